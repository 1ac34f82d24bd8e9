package analysis

// MaxDateTicks caps how many date labels the filtered trend chart prints.
const MaxDateTicks = 20

// TickStep returns the index stride for n labels: max(1, n/maxTicks).
func TickStep(n, maxTicks int) int {
	if maxTicks <= 0 {
		return 1
	}
	if s := n / maxTicks; s > 1 {
		return s
	}
	return 1
}

// TickIndices returns 0, step, 2*step, ... below n.
func TickIndices(n, maxTicks int) []int {
	if n <= 0 {
		return nil
	}
	step := TickStep(n, maxTicks)
	out := make([]int, 0, n/step+1)
	for i := 0; i < n; i += step {
		out = append(out, i)
	}
	return out
}
