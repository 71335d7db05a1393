package carbon

import (
	"strings"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleRecords() []FlatRecord {
	return []FlatRecord{
		{Activity: "diesel_combustion", Scope: "scope1", SiteName: "Korba", State: "Chhattisgarh", GridRegion: "Western", Date: day(2024, time.March, 5), CO2eTons: 10},
		{Activity: "grid_electricity", Scope: "scope2", SiteName: "Korba", State: "Chhattisgarh", GridRegion: "Western", Date: day(2024, time.January, 10), CO2eTons: 30},
		{Activity: "diesel_combustion", Scope: "scope1", SiteName: "Jharia", State: "Jharkhand", GridRegion: "Eastern", Date: day(2024, time.February, 20), CO2eTons: 20},
		{Activity: "haul_road_dust", Scope: "scope1", SiteName: "Jharia", State: "", GridRegion: "", Date: day(2023, time.December, 1), CO2eTons: 40},
	}
}

func TestByActivity(t *testing.T) {
	a := NewAggregator(DefaultPalette())
	slices := a.ByActivity(sampleRecords())

	if len(slices) != 3 {
		t.Fatalf("expected 3 activity groups, got %d", len(slices))
	}
	if slices[0].Name != "Diesel combustion" || slices[0].Value != 30 {
		t.Errorf("first group = %+v, want Diesel combustion / 30", slices[0])
	}
	if slices[0].Color != "#f59e0b" {
		t.Errorf("known activity should use the fixed palette, got %q", slices[0].Color)
	}
	if slices[2].Name != "Haul road dust" {
		t.Errorf("label normalization failed: %q", slices[2].Name)
	}
	// Unknown activity at index 2 of 3 groups: hue = 2 * 360/3 = 240.
	if slices[2].Color != "hsl(240, 70%, 60%)" {
		t.Errorf("unknown activity hue = %q, want hsl(240, 70%%, 60%%)", slices[2].Color)
	}
}

func TestByScope(t *testing.T) {
	a := NewAggregator(DefaultPalette())
	slices := a.ByScope(sampleRecords())

	byName := map[string]Slice{}
	for _, s := range slices {
		byName[s.Name] = s
	}
	if s := byName["Scope 1"]; s.Value != 70 || s.Color != "#10b981" {
		t.Errorf("Scope 1 = %+v", s)
	}
	if s := byName["Scope 2"]; s.Value != 30 || s.Color != "#6366f1" {
		t.Errorf("Scope 2 = %+v", s)
	}

	odd := a.ByScope([]FlatRecord{{Scope: "biogenic", CO2eTons: 1}})
	if odd[0].Color != "#94a3b8" {
		t.Errorf("unrecognized scope should use the gray fallback, got %q", odd[0].Color)
	}
}

func TestBySiteSortedDescending(t *testing.T) {
	a := NewAggregator(DefaultPalette())
	slices := a.BySite(sampleRecords())

	if slices[0].Name != "Jharia" || slices[0].Value != 60 {
		t.Errorf("largest emitter first: got %+v", slices[0])
	}
	if slices[1].Name != "Korba" || slices[1].Value != 40 {
		t.Errorf("second emitter: got %+v", slices[1])
	}
}

func TestByStateAndGridUnknownGroups(t *testing.T) {
	a := NewAggregator(DefaultPalette())

	states := a.ByState(sampleRecords())
	foundUnknown := false
	for _, s := range states {
		if s.Name == "Unknown" && s.Value == 40 {
			foundUnknown = true
		}
	}
	if !foundUnknown {
		t.Errorf("empty state should roll up as Unknown: %+v", states)
	}

	grids := a.ByGrid(sampleRecords())
	for _, g := range grids {
		if g.Name == "Unknown" {
			if g.Color != "#94a3b8" {
				t.Errorf("Unknown grid color = %q", g.Color)
			}
			continue
		}
		if !strings.HasSuffix(g.Name, " Grid") {
			t.Errorf("grid label missing suffix: %q", g.Name)
		}
	}
}

func TestMonthlyTrendOrderedByEarliestDate(t *testing.T) {
	a := NewAggregator(DefaultPalette())
	points := a.MonthlyTrend(sampleRecords())

	// Dec 2023 precedes Jan/Feb/Mar 2024 even though "Dec" sorts last
	// alphabetically.
	want := []string{"Dec", "Jan", "Feb", "Mar"}
	if len(points) != len(want) {
		t.Fatalf("expected %d months, got %d", len(want), len(points))
	}
	for i, p := range points {
		if p.Name != want[i] {
			t.Errorf("month %d = %q, want %q", i, p.Name, want[i])
		}
	}
}

func TestPercentShares(t *testing.T) {
	slices := []Slice{{Value: 30}, {Value: 50}, {Value: 20}}
	shares := PercentShares(slices)

	var sum float64
	for _, s := range shares {
		sum += s
	}
	if sum < 99.999 || sum > 100.001 {
		t.Errorf("shares should sum to 100, got %v", sum)
	}
	if shares[1] != 50 {
		t.Errorf("share of 50/100 = %v, want 50", shares[1])
	}

	zero := PercentShares([]Slice{{Value: 0}, {Value: 0}})
	for _, s := range zero {
		if s != 0 {
			t.Errorf("zero total must report 0%%, got %v", s)
		}
	}
}

func TestTopActivities(t *testing.T) {
	a := NewAggregator(DefaultPalette())
	top := a.TopActivities(sampleRecords(), 2)

	if len(top) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(top))
	}
	if top[0].Name != "Haul road dust" || top[0].Value != 40 {
		t.Errorf("top source = %+v", top[0])
	}
}

func TestTotalEmptyInput(t *testing.T) {
	if got := Total(nil); got != 0 {
		t.Errorf("Total(nil) = %v", got)
	}
	a := NewAggregator(DefaultPalette())
	if got := a.ByActivity(nil); len(got) != 0 {
		t.Errorf("ByActivity(nil) = %+v", got)
	}
	if got := a.MonthlyTrend(nil); len(got) != 0 {
		t.Errorf("MonthlyTrend(nil) = %+v", got)
	}
}
