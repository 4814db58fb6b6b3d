package flatview

// bisect returns the largest i in [0, len(bounds)) such that bounds[i] <= x.
// bounds must be sorted ascending and bounds[0] <= x. Used to turn a flat
// (module, wire, port) global or per-module offset back into the bucket
// that contains it — the mirror image of the prefix-sum tables Build
// constructs (spec.md §4.7 navigation).
func bisect(bounds []uint64, x uint64) int {
	lo, hi := 0, len(bounds)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if bounds[mid] <= x {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
