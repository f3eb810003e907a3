package estimate

import (
	"testing"

	"github.com/apalumbo/stima/internal/phase"
)

var fourPhases = []phase.Phase{
	{Name: "Analisi", MinHours: 10, MaxHours: 15},
	{Name: "Backend", MinHours: 8, MaxHours: 10},
	{Name: "Frontend", MinHours: 8, MaxHours: 12},
	{Name: "Rilascio", MinHours: 6, MaxHours: 8},
}

func singleConfig(rate, weekly float64) Config {
	return Config{Rate: Single(rate), WeeklyHours: Single(weekly), DownPaymentPct: 50}
}

func TestRound5(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1, 0},
		{2.4, 0},
		{2.5, 5},
		{3, 5},
		{5, 5},
		{7, 5},
		{8, 10},
		{1120, 1120},
		{1347.5, 1350},
		{1572, 1570},
		{1573, 1575},
	}
	for _, c := range cases {
		if got := Round5(c.in); got != c.want {
			t.Errorf("Round5(%g): expected %g, got %g", c.in, c.want, got)
		}
	}
}

func TestCompute_EndToEndExample(t *testing.T) {
	// Four phases, 35/hour, 15 hours a week.
	agg, err := Compute(fourPhases, singleConfig(35, 15))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if agg.TotalHoursMin != 32 || agg.TotalHoursMax != 45 {
		t.Errorf("expected totals 32/45, got %d/%d", agg.TotalHoursMin, agg.TotalHoursMax)
	}
	if agg.PriceMin != 1120 || agg.PriceMax != 1575 {
		t.Errorf("expected prices 1120/1575, got %g/%g", agg.PriceMin, agg.PriceMax)
	}
	if agg.WeeksMin != 2 || agg.WeeksMax != 3 {
		t.Errorf("expected weeks 2/3, got %d/%d", agg.WeeksMin, agg.WeeksMax)
	}
}

func TestCompute_Additivity(t *testing.T) {
	agg, err := Compute(fourPhases, singleConfig(35, 15))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var min, max int
	for _, p := range fourPhases {
		min += p.MinHours
		max += p.MaxHours
	}
	if agg.TotalHoursMin != min || agg.TotalHoursMax != max {
		t.Errorf("totals %d/%d do not match per-phase sums %d/%d",
			agg.TotalHoursMin, agg.TotalHoursMax, min, max)
	}
}

func TestCompute_EmptyPhases(t *testing.T) {
	agg, err := Compute(nil, singleConfig(35, 15))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if agg != (Aggregate{}) {
		t.Errorf("expected zero aggregate, got %+v", agg)
	}
}

func TestCompute_RangedPairing(t *testing.T) {
	// Best case pairs min hours with max capacity and the low rate;
	// worst case pairs max hours with min capacity and the high rate.
	phases := []phase.Phase{{Name: "Unica", MinHours: 30, MaxHours: 60}}
	cfg := Config{
		Rate:        Ranged(30, 40),
		WeeklyHours: Ranged(10, 15),
	}
	agg, err := Compute(phases, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if agg.PriceMin != 900 { // round5(30*30)
		t.Errorf("expected price min 900, got %g", agg.PriceMin)
	}
	if agg.PriceMax != 2400 { // round5(60*40)
		t.Errorf("expected price max 2400, got %g", agg.PriceMax)
	}
	if agg.WeeksMin != 2 { // round(30/15)
		t.Errorf("expected weeks min 2, got %d", agg.WeeksMin)
	}
	if agg.WeeksMax != 6 { // round(60/10)
		t.Errorf("expected weeks max 6, got %d", agg.WeeksMax)
	}
}

func TestValidate_RejectsBadConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"zero rate", Config{Rate: Single(0), WeeklyHours: Single(15)}},
		{"negative rate", Config{Rate: Single(-35), WeeklyHours: Single(15)}},
		{"zero weekly hours", Config{Rate: Single(35), WeeklyHours: Single(0)}},
		{"negative weekly hours", Config{Rate: Single(35), WeeklyHours: Single(-1)}},
		{"inverted rate band", Config{Rate: Ranged(40, 30), WeeklyHours: Single(15)}},
		{"inverted weekly band", Config{Rate: Single(35), WeeklyHours: Ranged(16, 12)}},
		{"down payment over 100", Config{Rate: Single(35), WeeklyHours: Single(15), DownPaymentPct: 120}},
		{"negative milestones", Config{Rate: Single(35), WeeklyHours: Single(15), Milestones: -1}},
		{"negative feedback weeks", Config{Rate: Single(35), WeeklyHours: Single(15), FeedbackWeeks: -2}},
	}
	for _, c := range cases {
		if err := c.cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", c.name)
		}
	}
}

func TestValidate_AcceptsGoodConfig(t *testing.T) {
	cfg := Config{Rate: Ranged(34, 36), WeeklyHours: Ranged(12, 16), DownPaymentPct: 50, FeedbackWeeks: 2}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCompute_RejectsInvalidConfig(t *testing.T) {
	if _, err := Compute(fourPhases, Config{Rate: Single(35)}); err == nil {
		t.Fatal("expected error for zero weekly capacity")
	}
}

func TestFinalHoursAndWeeks(t *testing.T) {
	agg, err := Compute(fourPhases, singleConfig(35, 15))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := agg.FinalHours(); got != 39 { // round((32+45)/2)
		t.Errorf("expected final hours 39, got %d", got)
	}
	if got := agg.FinalWeeks(); got != 3 { // round((2+3)/2), tie rounds up
		t.Errorf("expected final weeks 3, got %d", got)
	}
}

func TestFinalPrice_SingleRateMode(t *testing.T) {
	cfg := singleConfig(35, 15)
	agg, err := Compute(fourPhases, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := FinalPrice(agg, cfg); got != 1365 { // 39 * 35, no re-rounding
		t.Errorf("expected final price 1365, got %g", got)
	}
}

func TestFinalPrice_RangedRateMode(t *testing.T) {
	cfg := Config{Rate: Ranged(35, 35), WeeklyHours: Single(15)}
	agg, err := Compute(fourPhases, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// round5((1120+1575)/2) = round5(1347.5) = 1350: the ranged mode
	// averages the price bounds instead of repricing midpoint hours.
	if got := FinalPrice(agg, cfg); got != 1350 {
		t.Errorf("expected final price 1350, got %g", got)
	}
}

func TestAverageHours(t *testing.T) {
	cases := []struct {
		p    phase.Phase
		want int
	}{
		{phase.Phase{MinHours: 10, MaxHours: 15}, 13}, // 12.5 rounds up
		{phase.Phase{MinHours: 8, MaxHours: 10}, 9},
		{phase.Phase{MinHours: 5, MaxHours: 5}, 5},
	}
	for _, c := range cases {
		if got := AverageHours(c.p); got != c.want {
			t.Errorf("AverageHours(%d,%d): expected %d, got %d", c.p.MinHours, c.p.MaxHours, c.want, got)
		}
	}
}
