package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// StrOr dereferences p, or returns fallback when p is nil or empty.
func StrOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return CoalesceStr(*p, fallback)
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string {
	return &s
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}
