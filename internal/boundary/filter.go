package boundary

// FilterByAllowList：按白名单保留要素，生成新集合
// 约束：保持原始顺序；输入集合及其要素不被修改；对结果重复过滤得到相同结果
func FilterByAllowList(fc *FeatureCollection, allow AllowList, key string) *FeatureCollection {
	out := emptyLike(fc)
	for _, f := range fc.Features {
		name, ok := PlaceName(f, key)
		if !ok || !allow.Contains(name) {
			continue
		}
		out.Append(cloneFeature(f))
	}
	return out
}

// MergeFeature：在集合末尾追加一个要素，返回新集合
func MergeFeature(fc *FeatureCollection, f *Feature) *FeatureCollection {
	out := emptyLike(fc)
	out.Features = make([]*Feature, 0, len(fc.Features)+1)
	out.Features = append(out.Features, fc.Features...)
	out.Features = append(out.Features, f)
	return out
}
