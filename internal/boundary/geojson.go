package boundary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb/geojson"
)

const (
	typeFeature           = "Feature"
	typeFeatureCollection = "FeatureCollection"
)

// 文档注释：透传型要素
// 背景：几何、id 与其他成员不解码，原样写回，保留 Z/M 坐标与超出 float64 精度的整数
// 约束：只有 properties 被解码（数值为 json.Number）；ExtraMembers 的值只读共享
type Feature struct {
	Type         string
	ID           json.RawMessage
	Geometry     json.RawMessage
	Properties   geojson.Properties
	ExtraMembers map[string]json.RawMessage
}

// FeatureCollection：features 以外的顶层成员（bbox、name、crs 等）原样保存在 ExtraMembers
type FeatureCollection struct {
	Features     []*Feature
	ExtraMembers map[string]json.RawMessage
}

func NewFeatureCollection() *FeatureCollection {
	return &FeatureCollection{Features: []*Feature{}}
}

func (fc *FeatureCollection) Append(f *Feature) *FeatureCollection {
	fc.Features = append(fc.Features, f)
	return fc
}

func (f *Feature) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return errors.New("feature is null")
	}
	*f = Feature{}
	for k, v := range raw {
		switch k {
		case "type":
			if err := json.Unmarshal(v, &f.Type); err != nil {
				return fmt.Errorf("feature type: %w", err)
			}
		case "id":
			f.ID = v
		case "geometry":
			f.Geometry = v
		case "properties":
			props, err := decodeProperties(v)
			if err != nil {
				return fmt.Errorf("feature properties: %w", err)
			}
			f.Properties = props
		default:
			if f.ExtraMembers == nil {
				f.ExtraMembers = make(map[string]json.RawMessage)
			}
			f.ExtraMembers[k] = v
		}
	}
	if f.Properties == nil {
		f.Properties = geojson.Properties{}
	}
	return nil
}

// MarshalJSON：键按字典序输出，同样的输入总是得到同样的字节
func (f Feature) MarshalJSON() ([]byte, error) {
	m := make(map[string]json.RawMessage, len(f.ExtraMembers)+4)
	for k, v := range f.ExtraMembers {
		m[k] = v
	}
	typ := f.Type
	if typ == "" {
		typ = typeFeature
	}
	tb, err := Encode(typ)
	if err != nil {
		return nil, err
	}
	m["type"] = tb
	if f.ID != nil {
		m["id"] = f.ID
	}
	if f.Geometry != nil {
		m["geometry"] = f.Geometry
	}
	props := map[string]any(f.Properties)
	if props == nil {
		props = map[string]any{}
	}
	pb, err := Encode(props)
	if err != nil {
		return nil, err
	}
	m["properties"] = pb
	return Encode(m)
}

func (fc *FeatureCollection) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var typ string
	if v, ok := raw["type"]; ok {
		if err := json.Unmarshal(v, &typ); err != nil {
			return fmt.Errorf("collection type: %w", err)
		}
	}
	if typ != typeFeatureCollection {
		return fmt.Errorf("not a feature collection: type=%q", typ)
	}
	fv, ok := raw["features"]
	if !ok {
		return errors.New("missing features")
	}
	*fc = FeatureCollection{}
	if err := json.Unmarshal(fv, &fc.Features); err != nil {
		return fmt.Errorf("features: %w", err)
	}
	if fc.Features == nil {
		fc.Features = []*Feature{}
	}
	for k, v := range raw {
		if k == "type" || k == "features" {
			continue
		}
		if fc.ExtraMembers == nil {
			fc.ExtraMembers = make(map[string]json.RawMessage)
		}
		fc.ExtraMembers[k] = v
	}
	return nil
}

func (fc FeatureCollection) MarshalJSON() ([]byte, error) {
	m := make(map[string]json.RawMessage, len(fc.ExtraMembers)+2)
	for k, v := range fc.ExtraMembers {
		m[k] = v
	}
	m["type"] = json.RawMessage(`"` + typeFeatureCollection + `"`)
	features := fc.Features
	if features == nil {
		features = []*Feature{}
	}
	fb, err := Encode(features)
	if err != nil {
		return nil, err
	}
	m["features"] = fb
	return Encode(m)
}

func decodeProperties(raw json.RawMessage) (geojson.Properties, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var p map[string]any
	if err := dec.Decode(&p); err != nil {
		return nil, err
	}
	return geojson.Properties(p), nil
}

// Encode：产物的统一编码；不转义 <>&，与源文件中的地名保持一致；去掉 Encoder 追加的换行
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
