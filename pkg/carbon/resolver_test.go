package carbon

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestResolveKeywordPrecedence(t *testing.T) {
	r := NewResolver(DefaultConfig())

	tests := []struct {
		name       string
		activity   string
		amount     float64
		ctx        SiteContext
		wantFactor float64
		wantTons   float64
	}{
		{"diesel combustion", "diesel_combustion", 500, SiteContext{}, 2.68, 1.34},
		{"fuel keyword maps to diesel", "generator fuel", 100, SiteContext{}, 2.68, 0.268},
		{"grid electricity southern tropical", "grid_electricity", 1000,
			SiteContext{GridRegion: "Southern", ClimateZone: "Tropical"}, 0.72, 0.7488},
		{"grid electricity no context uses defaults", "grid_electricity", 1000, SiteContext{}, 0.81, 0.81},
		{"unknown grid region falls back", "electricity import", 1000,
			SiteContext{GridRegion: "Central"}, 0.81, 0.81},
		{"captive coal power", "captive_coal_power", 2000, SiteContext{}, 0.95, 1.9},
		{"explosives", "explosives_anfo", 100, SiteContext{}, 0.19, 0.019},
		{"blasting keyword", "blasting charges", 100, SiteContext{}, 0.19, 0.019},
		{"transport plain terrain", "ore_transport", 1000, SiteContext{ClimateZone: "Tropical"}, 0.15, 0.15},
		{"transport hilly terrain", "ore_transport", 1000, SiteContext{ClimateZone: "Montane"}, 0.22, 0.22},
		{"no keyword uses default factor", "office_supplies", 1000, SiteContext{}, 0.5, 0.5},
		{"diesel wins over transport", "diesel_transport", 100, SiteContext{ClimateZone: "Montane"}, 2.68, 0.268},
		{"zero amount", "diesel_combustion", 0, SiteContext{}, 2.68, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Resolve(tt.activity, tt.amount, tt.ctx)
			if !almostEqual(res.Factor, tt.wantFactor) {
				t.Errorf("Resolve(%q).Factor = %v, want %v", tt.activity, res.Factor, tt.wantFactor)
			}
			if !almostEqual(res.CO2eTons, tt.wantTons) {
				t.Errorf("Resolve(%q).CO2eTons = %v, want %v", tt.activity, res.CO2eTons, tt.wantTons)
			}
			if res.CO2eTons < 0 || math.IsNaN(res.CO2eTons) || math.IsInf(res.CO2eTons, 0) {
				t.Errorf("Resolve(%q) produced non-finite or negative tonnage %v", tt.activity, res.CO2eTons)
			}
		})
	}
}

func TestClimateAdjustmentOnlyScalesElectricity(t *testing.T) {
	r := NewResolver(DefaultConfig())

	arid := r.Resolve("diesel_combustion", 500, SiteContext{ClimateZone: "Arid"})
	plain := r.Resolve("diesel_combustion", 500, SiteContext{})
	if arid.CO2eTons != plain.CO2eTons {
		t.Errorf("climate zone changed a non-electricity result: %v != %v", arid.CO2eTons, plain.CO2eTons)
	}

	elec := r.Resolve("grid_electricity", 1000, SiteContext{GridRegion: "Northern", ClimateZone: "Arid"})
	if !almostEqual(elec.EffectiveAmount, 1080) {
		t.Errorf("EffectiveAmount = %v, want 1080 (1000 * Arid 1.08)", elec.EffectiveAmount)
	}
	if !almostEqual(elec.CO2eTons, 1080*0.82/1000) {
		t.Errorf("CO2eTons = %v, want %v", elec.CO2eTons, 1080*0.82/1000)
	}
}

func TestResolveValueChain(t *testing.T) {
	r := NewResolver(DefaultConfig())

	tests := []struct {
		name       string
		category   string
		amount     float64
		wantFactor float64
	}{
		{"purchased goods", "Purchased Goods & Services", 1000, 0.35},
		{"freight", "Freight Transport", 1000, 0.12},
		{"logistics keyword", "Upstream Logistics", 1000, 0.12},
		{"business travel", "Business Travel", 1000, 0.18},
		{"commuting", "Employee Commuting", 1000, 0.15},
		{"waste", "Waste Disposal", 1000, 0.45},
		{"free text default", "Leased Equipment", 1000, 0.5},
		{"case insensitive", "waste disposal", 1000, 0.45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.ResolveValueChain(tt.category, tt.amount)
			if !almostEqual(res.Factor, tt.wantFactor) {
				t.Errorf("ResolveValueChain(%q).Factor = %v, want %v", tt.category, res.Factor, tt.wantFactor)
			}
			if !almostEqual(res.CO2eTons, tt.amount*tt.wantFactor/1000) {
				t.Errorf("ResolveValueChain(%q).CO2eTons = %v, want %v",
					tt.category, res.CO2eTons, tt.amount*tt.wantFactor/1000)
			}
		})
	}
}

func TestClassifyScope(t *testing.T) {
	tests := []struct {
		activity string
		want     Scope
	}{
		{"grid_electricity", Scope2},
		{"Grid Import", Scope2},
		{"purchased electricity", Scope2},
		{"diesel_combustion", Scope1},
		{"explosives_anfo", Scope1},
		{"captive_coal_power", Scope1},
		{"", Scope1},
	}

	for _, tt := range tests {
		if got := ClassifyScope(tt.activity); got != tt.want {
			t.Errorf("ClassifyScope(%q) = %v, want %v", tt.activity, got, tt.want)
		}
	}
}
