package counters

// CounterType identifies a kind-scoped counter.
type CounterType string

const (
	// CounterTypeLadsInPlay counts Lad cards currently on either table.
	CounterTypeLadsInPlay CounterType = "lads_in_play"
)

// String returns the string representation of the counter type.
func (ct CounterType) String() string {
	return string(ct)
}

// Triangular maps a count n to ceil(n*(n+1)/2). Non-positive counts map to 0.
func Triangular(n int) int {
	if n <= 0 {
		return 0
	}
	// n*(n+1) is always even, so the division is exact.
	return n * (n + 1) / 2
}
