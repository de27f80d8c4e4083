// 包 boundary：边界数据的加载、过滤、合并与落盘；整个提取流程为单向流水线，任一步失败即终止
package boundary

import (
	"errors"
	"fmt"
)

// DataLoadError：源文件缺失、不可读或不是合法的 FeatureCollection
type DataLoadError struct {
	Path string
	Err  error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("boundary: load %s: %v", e.Path, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// FeatureNotFoundError：副数据源中找不到指定名称的要素
type FeatureNotFoundError struct {
	Name string
	Key  string
	Path string
}

func (e *FeatureNotFoundError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("boundary: feature %s=%q not found in %s", e.Key, e.Name, e.Path)
	}
	return fmt.Sprintf("boundary: feature %s=%q not found", e.Key, e.Name)
}

// WriteError：产物无法持久化（权限、目录缺失、磁盘已满等）
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("boundary: write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ErrAllowListCoverage：严格模式下白名单中存在主数据源没有的名称
var ErrAllowListCoverage = errors.New("boundary: allow-list names missing from primary source")
