package boundary

// ExtractNamedFeature：查找 properties[key]==target 的第一个要素，返回把 key 改名为 renameTo 的副本
// 背景：副数据源用大写 NAME，主数据源用 name；合并前需统一键名
// 约束：源集合不变；找不到时返回 *FeatureNotFoundError
func ExtractNamedFeature(fc *FeatureCollection, key, target, renameTo string) (*Feature, error) {
	for _, f := range fc.Features {
		name, ok := PlaceName(f, key)
		if !ok || name != target {
			continue
		}
		c := cloneFeature(f)
		c.Properties = RenameProperty(f.Properties, key, renameTo)
		return c, nil
	}
	return nil, &FeatureNotFoundError{Name: target, Key: key}
}
