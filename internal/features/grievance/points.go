package grievance

import (
	"fmt"

	"github.com/d5/tengo/v2"
)

// Submission rewards. Kept as a script so the formula can be tuned without a
// redeploy; the defaults mirror the launch reward table.
const (
	BasePoints         = 10
	LengthBonus50Chars = 5
	LengthBonus100     = 10
)

// DefaultPointsScript is the built-in reward rule: a base grant plus a bonus
// for longer, more useful submissions.
const DefaultPointsScript = `
points := base
if length >= 100 {
	points += bonus_100
} else if length >= 50 {
	points += bonus_50
}
`

// PointsEngine evaluates the reward rule for one submission.
type PointsEngine struct {
	source string
}

func NewPointsEngine(source string) *PointsEngine {
	if source == "" {
		source = DefaultPointsScript
	}
	return &PointsEngine{source: source}
}

// Compute runs the rule with the submission's detail length. A broken script
// falls back to the base grant so submissions are never blocked by a bad
// rule edit.
func (e *PointsEngine) Compute(detailsLength int) (int, error) {
	script := tengo.NewScript([]byte(e.source))

	_ = script.Add("length", detailsLength)
	_ = script.Add("base", BasePoints)
	_ = script.Add("bonus_50", LengthBonus50Chars)
	_ = script.Add("bonus_100", LengthBonus100)

	compiled, err := script.Run()
	if err != nil {
		return BasePoints, fmt.Errorf("points script failed: %w", err)
	}

	points := compiled.Get("points")
	if points == nil {
		return BasePoints, fmt.Errorf("points script did not set 'points'")
	}
	return points.Int(), nil
}
