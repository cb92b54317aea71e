package timebase

// MillisClock is a monotonically non-decreasing millisecond time
// source. Wrapping around the uint64 range is tolerated by clients as
// long as their update periods fit within the wraparound window.
type MillisClock interface {
	Now() uint64
}
