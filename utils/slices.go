package utils

// Missing returns the items of have whose key does not occur in want, 在 have 中但不在 want 中.
func Missing[T any, K comparable](have []T, want []T, key func(item T) K) []T {
	seen := make(map[K]struct{}, len(want))
	for _, item := range want {
		seen[key(item)] = struct{}{}
	}
	var out []T
	for _, item := range have {
		if _, ok := seen[key(item)]; !ok {
			out = append(out, item)
		}
	}
	return out
}

// Uniq keeps the first occurrence of every item, order is preserved.
func Uniq[T comparable](items []T) []T {
	seen := make(map[T]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
