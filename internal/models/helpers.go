package models

// CloneIDs returns a copy of ids; the result is never nil so that JSON
// always carries an array.
func CloneIDs(ids []string) []string {
	return cloneSlice(ids)
}

func cloneSlice[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
