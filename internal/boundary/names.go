package boundary

// CollectNames：extra 在前，其后是集合中每个要素的地名（按原顺序）
// 约束：输出长度 = len(extra) + 要素数；地名缺失的要素记为空串，保证位置一一对应
func CollectNames(fc *FeatureCollection, key string, extra ...string) []string {
	out := make([]string, 0, len(extra)+len(fc.Features))
	out = append(out, extra...)
	for _, f := range fc.Features {
		name, _ := PlaceName(f, key)
		out = append(out, name)
	}
	return out
}
