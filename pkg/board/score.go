package board

import "fmt"

// Score is a signed move or position score in centipawns. Positive favors white.
type Score int16

const (
	MinScore Score = -30000
	MaxScore Score = 30000
)

func (s Score) String() string {
	return fmt.Sprintf("%.2f", float64(s)/100)
}
