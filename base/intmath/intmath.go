package intmath

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Sign returns -1, 0, or 1 according to the sign of v.
func Sign[T Signed](v T) T {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func Abs[T Signed](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

func Clamp[T Signed](min, v, max T) T {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
