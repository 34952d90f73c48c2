// Package bounty computes the signed score a finishing position is worth.
package bounty

// Default scoring constants. The factor governs the spread between first and
// last place; the bonus rewards the outright winner on top of placement.
const (
	DefaultWinBonus        = 200
	DefaultPlacementFactor = 20
)

// Calculator maps (position, field size, winner flag) to an integer score.
type Calculator struct {
	winBonus        int
	placementFactor int
}

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithWinBonus overrides the first-place bonus.
func WithWinBonus(bonus int) Option {
	return func(c *Calculator) {
		if bonus >= 0 {
			c.winBonus = bonus
		}
	}
}

// WithPlacementFactor overrides the placement scale factor.
func WithPlacementFactor(factor int) Option {
	return func(c *Calculator) {
		if factor > 0 {
			c.placementFactor = factor
		}
	}
}

// NewCalculator creates a Calculator with configuration options.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		winBonus:        DefaultWinBonus,
		placementFactor: DefaultPlacementFactor,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Score computes the bounty for one finishing position in a field of
// totalPlayers. Placement is ((N - position + 1) - N/2) * factor with
// real-valued N/2, truncated toward zero; the win bonus applies only to the
// winner. First place always scores highest, last place lowest, and a true
// middle position lands near zero.
func (c *Calculator) Score(position, totalPlayers int, winner bool) int {
	bonus := 0
	if winner {
		bonus = c.winBonus
	}
	placement := (float64(totalPlayers-position+1) - float64(totalPlayers)/2) * float64(c.placementFactor)
	return bonus + int(placement)
}

// WinBonus returns the configured first-place bonus.
func (c *Calculator) WinBonus() int {
	return c.winBonus
}

// PlacementFactor returns the configured scale factor.
func (c *Calculator) PlacementFactor() int {
	return c.placementFactor
}
