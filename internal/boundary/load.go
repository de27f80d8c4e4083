package boundary

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load：读取并解析 GeoJSON FeatureCollection
// 背景：几何与未知成员按原始字节保存，写出时原样带回
// 约束：文件整体读入内存；缺失/不可读/非法 JSON/非 FeatureCollection 统一返回 *DataLoadError
func Load(path string) (*FeatureCollection, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &DataLoadError{Path: path, Err: err}
	}
	fc := &FeatureCollection{}
	if err := json.Unmarshal(b, fc); err != nil {
		return nil, &DataLoadError{Path: path, Err: err}
	}
	for i, f := range fc.Features {
		if f == nil {
			return nil, &DataLoadError{Path: path, Err: fmt.Errorf("null feature at index %d", i)}
		}
	}
	return fc, nil
}
