package common

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
// The renderer uses it to default staged sampler fields whose zero value is unusable, such as
// a zero max anisotropy. Do not use it for enums whose zero value is a valid choice: wgpu's
// FilterModeNearest and AddressModeRepeat are both zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
