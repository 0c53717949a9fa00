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

// ClampNonNegative returns n, or 0 when n is negative.
func ClampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
