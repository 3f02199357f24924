package domain

import "fmt"

// BallsPerOver is the number of legal deliveries in one over.
const BallsPerOver = 6

// Overs counts completed overs plus legal balls bowled in the current over,
// mirroring scorebook notation: "14.3" means 14 overs and 3 legal balls.
// Wides and no-balls never advance the counter.
type Overs struct {
	Completed int
	Balls     int // 0..5
}

// AddBall advances the counter by one legal delivery. It returns the updated
// counter and whether that delivery completed the over.
func (o Overs) AddBall() (Overs, bool) {
	if o.Balls == BallsPerOver-1 {
		return Overs{Completed: o.Completed + 1}, true
	}
	return Overs{Completed: o.Completed, Balls: o.Balls + 1}, false
}

// Value returns the fixed-point decimal form used for rate arithmetic, where
// the first decimal digit is the ball count (14.3 = 14 overs, 3 balls).
func (o Overs) Value() float64 {
	return float64(o.Completed) + float64(o.Balls)/10
}

// Reached reports whether the full quota of limit overs has been bowled.
func (o Overs) Reached(limit int) bool {
	return o.Completed >= limit
}

// String renders scorebook notation, e.g. "14.3" or "20.0".
func (o Overs) String() string {
	return fmt.Sprintf("%d.%d", o.Completed, o.Balls)
}
