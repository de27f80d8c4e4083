package boundary

import (
	"encoding/json"

	"github.com/paulmach/orb/geojson"
)

// PlaceName：读取要素的地名属性；属性缺失或不是字符串时 ok=false
func PlaceName(f *Feature, key string) (string, bool) {
	if f == nil || f.Properties == nil {
		return "", false
	}
	v, ok := f.Properties[key].(string)
	return v, ok
}

// RenameProperty：返回把 from 改名为 to 的属性副本，原 map 不变
// 约束：from 不存在时仅复制；to 已存在时被 from 的值覆盖
func RenameProperty(props geojson.Properties, from, to string) geojson.Properties {
	out := props.Clone()
	if out == nil {
		out = geojson.Properties{}
	}
	v, ok := out[from]
	if !ok || from == to {
		return out
	}
	delete(out, from)
	out[to] = v
	return out
}

// cloneFeature：复制属性表与成员表；几何等原始字节只读共享
func cloneFeature(f *Feature) *Feature {
	c := *f
	c.Properties = f.Properties.Clone()
	if f.ExtraMembers != nil {
		c.ExtraMembers = make(map[string]json.RawMessage, len(f.ExtraMembers))
		for k, v := range f.ExtraMembers {
			c.ExtraMembers[k] = v
		}
	}
	return &c
}

// emptyLike：复制顶层成员，不带要素
func emptyLike(fc *FeatureCollection) *FeatureCollection {
	out := NewFeatureCollection()
	if fc.ExtraMembers != nil {
		out.ExtraMembers = make(map[string]json.RawMessage, len(fc.ExtraMembers))
		for k, v := range fc.ExtraMembers {
			out.ExtraMembers[k] = v
		}
	}
	return out
}
