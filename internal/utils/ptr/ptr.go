// Package ptr has helpers for the optional (pointer) fields of project records.
package ptr

// To creates a pointer to the given value.
func To[T any](v T) *T {
	return &v
}

// String creates a pointer to s, or nil when s is empty.
func String(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Bool creates a pointer to the given bool value.
func Bool(b bool) *bool {
	return &b
}

// Int creates a pointer to the given int value.
func Int(i int) *int {
	return &i
}

// Deref returns *p, or the zero value when p is nil.
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
