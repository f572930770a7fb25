package config

import "time"

// SpeedCurve maps the current score to a tick interval.
// Intervals are in abstract units; Unit converts them to wall-clock time.
type SpeedCurve struct {
	Base          int           `yaml:"base"`
	Floor         int           `yaml:"floor"`
	Step          int           `yaml:"step"`
	PointsPerStep int           `yaml:"points_per_step"`
	MaxReduction  int           `yaml:"max_reduction"`
	Unit          time.Duration `yaml:"unit"`
}

// DefaultSpeedCurve returns the stock curve: 140 units, minus 10 per 5
// points, never below 60.
func DefaultSpeedCurve() SpeedCurve {
	return SpeedCurve{
		Base:          140,
		Floor:         60,
		Step:          10,
		PointsPerStep: 5,
		MaxReduction:  80,
		Unit:          time.Millisecond,
	}
}

// Normalize replaces invalid fields with their defaults.
func (c SpeedCurve) Normalize() SpeedCurve {
	d := DefaultSpeedCurve()
	if c.Base <= 0 {
		c.Base = d.Base
	}
	if c.Floor <= 0 || c.Floor > c.Base {
		c.Floor = min(d.Floor, c.Base)
	}
	if c.Step < 0 {
		c.Step = d.Step
	}
	if c.PointsPerStep <= 0 {
		c.PointsPerStep = d.PointsPerStep
	}
	if c.MaxReduction < 0 {
		c.MaxReduction = d.MaxReduction
	}
	if c.Unit <= 0 {
		c.Unit = d.Unit
	}
	return c
}

// IsZero reports whether the curve is entirely unset.
func (c SpeedCurve) IsZero() bool {
	return c == SpeedCurve{}
}

// Interval returns the tick interval in abstract units for the given score.
// The result is piecewise constant, non-increasing in score and bounded
// by [Floor, Base].
func (c SpeedCurve) Interval(score int) int {
	c = c.Normalize()
	if score < 0 {
		score = 0
	}
	reduction := min(c.MaxReduction, (score/c.PointsPerStep)*c.Step)
	return max(c.Floor, c.Base-reduction)
}

// Duration converts an interval in abstract units to wall-clock time.
func (c SpeedCurve) Duration(units int) time.Duration {
	return time.Duration(units) * c.Normalize().Unit
}
