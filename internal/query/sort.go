package query

// SortKeys 排序键白名单：外部键 → 列或派生列别名
type SortKeys map[string]string

// Resolve 外部输入只经由白名单映射，不会拼进 SQL
func (s SortKeys) Resolve(key string) (string, bool) {
	col, ok := s[key]
	return col, ok
}

// ResolveOr 未知键回落到 fallback
func (s SortKeys) ResolveOr(key, fallback string) string {
	if col, ok := s.Resolve(key); ok {
		return col
	}
	return fallback
}
