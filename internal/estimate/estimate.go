package estimate

import (
	"fmt"
	"math"

	"github.com/apalumbo/stima/internal/phase"
)

// Band is a configuration bound, either a fixed value (Min == Max,
// Ranged false) or a min/max pair. The tag is explicit rather than
// inferred from equal bounds because the two modes derive the final
// quote price differently.
type Band struct {
	Min    float64
	Max    float64
	Ranged bool
}

// Single returns a fixed-value band.
func Single(v float64) Band { return Band{Min: v, Max: v} }

// Ranged returns a min/max band.
func Ranged(min, max float64) Band { return Band{Min: min, Max: max, Ranged: true} }

// Config holds the pricing inputs for one run.
type Config struct {
	Rate        Band // hourly rate in euro
	WeeklyHours Band // weekly working capacity

	// Presentation-only knobs, no effect on the numbers.
	DownPaymentPct int
	Milestones     int
	FeedbackWeeks  int

	// FinalQuote selects the single-value rendering mode.
	FinalQuote bool
}

// Validate rejects configurations the engine would otherwise divide by
// or multiply into nonsense. Zero weekly capacity in particular is a
// division by zero downstream.
func (c Config) Validate() error {
	if c.Rate.Min <= 0 || c.Rate.Max <= 0 {
		return fmt.Errorf("hourly rate must be positive, got %g-%g", c.Rate.Min, c.Rate.Max)
	}
	if c.Rate.Min > c.Rate.Max {
		return fmt.Errorf("minimum hourly rate %g exceeds maximum %g", c.Rate.Min, c.Rate.Max)
	}
	if c.WeeklyHours.Min <= 0 || c.WeeklyHours.Max <= 0 {
		return fmt.Errorf("weekly hours must be positive, got %g-%g", c.WeeklyHours.Min, c.WeeklyHours.Max)
	}
	if c.WeeklyHours.Min > c.WeeklyHours.Max {
		return fmt.Errorf("minimum weekly hours %g exceeds maximum %g", c.WeeklyHours.Min, c.WeeklyHours.Max)
	}
	if c.DownPaymentPct < 0 || c.DownPaymentPct > 100 {
		return fmt.Errorf("down payment must be between 0 and 100 percent, got %d", c.DownPaymentPct)
	}
	if c.Milestones < 0 {
		return fmt.Errorf("milestone count must not be negative, got %d", c.Milestones)
	}
	if c.FeedbackWeeks < 0 {
		return fmt.Errorf("feedback window must not be negative, got %d", c.FeedbackWeeks)
	}
	return nil
}

// Aggregate is the derived estimate over all phases. It is recomputed on
// every run and never stored.
type Aggregate struct {
	TotalHoursMin int `json:"total_hours_min"`
	TotalHoursMax int `json:"total_hours_max"`

	PriceMin float64 `json:"price_min"`
	PriceMax float64 `json:"price_max"`

	WeeksMin int `json:"weeks_min"`
	WeeksMax int `json:"weeks_max"`
}

// Compute sums the phase bounds and derives price and timeline ranges.
// The best case pairs the optimistic hour total with the low rate and
// the full weekly capacity; the worst case pairs the pessimistic total
// with the high rate and the reduced capacity. The spread is intentional.
func Compute(phases []phase.Phase, cfg Config) (Aggregate, error) {
	if err := cfg.Validate(); err != nil {
		return Aggregate{}, err
	}

	var agg Aggregate
	for _, p := range phases {
		agg.TotalHoursMin += p.MinHours
		agg.TotalHoursMax += p.MaxHours
	}

	agg.PriceMin = Round5(float64(agg.TotalHoursMin) * cfg.Rate.Min)
	agg.PriceMax = Round5(float64(agg.TotalHoursMax) * cfg.Rate.Max)

	agg.WeeksMin = roundInt(float64(agg.TotalHoursMin) / cfg.WeeklyHours.Max)
	agg.WeeksMax = roundInt(float64(agg.TotalHoursMax) / cfg.WeeklyHours.Min)

	return agg, nil
}

// Round5 rounds to the nearest multiple of 5, ties away from zero.
func Round5(x float64) float64 {
	return 5 * math.Round(x/5)
}

func roundInt(x float64) int {
	return int(math.Round(x))
}

// FinalHours collapses the hour range to its rounded midpoint.
func (a Aggregate) FinalHours() int {
	return roundInt(float64(a.TotalHoursMin+a.TotalHoursMax) / 2)
}

// FinalWeeks collapses the timeline range to its rounded midpoint.
func (a Aggregate) FinalWeeks() int {
	return roundInt(float64(a.WeeksMin+a.WeeksMax) / 2)
}

// FinalPrice derives the single final-quote price. A fixed rate prices
// the midpoint hours directly; a ranged rate averages the two price
// bounds and re-rounds to a multiple of 5. The two rules come from
// different billing habits and must not be merged.
func FinalPrice(a Aggregate, cfg Config) float64 {
	if cfg.Rate.Ranged {
		return Round5((a.PriceMin + a.PriceMax) / 2)
	}
	return float64(a.FinalHours()) * cfg.Rate.Min
}

// AverageHours is a phase's rounded midpoint estimate, used by the
// final-quote table.
func AverageHours(p phase.Phase) int {
	return roundInt(float64(p.MinHours+p.MaxHours) / 2)
}
