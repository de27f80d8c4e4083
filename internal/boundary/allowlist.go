package boundary

// AllowList：保留名称的有序集合，构造后只读
type AllowList struct {
	names []string
	set   map[string]struct{}
}

// NewAllowList 按首次出现的顺序去重
func NewAllowList(names ...string) AllowList {
	a := AllowList{set: make(map[string]struct{}, len(names))}
	for _, n := range names {
		if _, ok := a.set[n]; ok {
			continue
		}
		a.set[n] = struct{}{}
		a.names = append(a.names, n)
	}
	return a
}

func (a AllowList) Contains(name string) bool {
	_, ok := a.set[name]
	return ok
}

func (a AllowList) Len() int { return len(a.names) }

// Names 返回副本，调用方修改不影响白名单
func (a AllowList) Names() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

// Missing：白名单中在集合里找不到对应要素的名称，保持白名单顺序
func (a AllowList) Missing(fc *FeatureCollection, key string) []string {
	seen := make(map[string]struct{}, len(fc.Features))
	for _, f := range fc.Features {
		if n, ok := PlaceName(f, key); ok {
			seen[n] = struct{}{}
		}
	}
	var out []string
	for _, n := range a.names {
		if _, ok := seen[n]; !ok {
			out = append(out, n)
		}
	}
	return out
}
