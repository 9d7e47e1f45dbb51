package dlpack

// IsCompactRowMajor reports whether the stride array matches the layout of
// compact, row-major data for the given shape. Rank 0 is vacuously compact.
//
// Used only on import: export always populates explicit compact strides.
func IsCompactRowMajor(shape, strides []int64) bool {
	ndim := len(shape)
	if ndim >= 1 && strides[ndim-1] != 1 {
		return false
	}
	for i := ndim - 2; i >= 0; i-- {
		if strides[i] != shape[i+1]*strides[i+1] {
			return false
		}
	}
	return true
}
