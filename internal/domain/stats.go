package domain

// Upper bounds used to draw stat bars.
const (
	MaxSingleStat = 300
	MaxTotalStat  = 1300
)

// StatPercent returns how much percent value is of max. Returns 0 when max is
// not positive.
func StatPercent(value, max int) float64 {
	if max <= 0 {
		return 0
	}
	return float64(value) / float64(max) * 100
}
