package carbon

import "strings"

// SiteContext carries the geographic attributes of the emitting site. Zero
// values fall back to the default grid factor and a climate coefficient of 1.0.
type SiteContext struct {
	GridRegion  string
	ClimateZone string
}

// Resolution is the outcome of a factor lookup.
type Resolution struct {
	Factor          float64 // kg CO2e per unit
	EffectiveAmount float64 // input amount after any climate scaling
	CO2eTons        float64
}

// rule pairs a keyword predicate with a factor selector. Rules are evaluated
// in order and the first match wins; later keywords never combine with earlier
// ones.
type rule struct {
	keywords []string
	selector func(cfg Config, ctx SiteContext, amount float64) (factor, effectiveAmount float64)
}

// Resolver turns an activity descriptor plus site context into a CO2e
// quantity. It never fails: unrecognized descriptors and missing context
// resolve to the default factors.
type Resolver struct {
	cfg   Config
	rules []rule
}

func NewResolver(cfg Config) *Resolver {
	return &Resolver{
		cfg: cfg,
		rules: []rule{
			{
				keywords: []string{"diesel", "fuel"},
				selector: func(cfg Config, _ SiteContext, amount float64) (float64, float64) {
					return cfg.Factors.Diesel, amount
				},
			},
			{
				keywords: []string{"electricity", "grid"},
				// Electricity consumption is inflated by climate-driven cooling
				// load, so the adjustment scales the amount, not the factor.
				selector: func(cfg Config, ctx SiteContext, amount float64) (float64, float64) {
					return cfg.gridFactor(ctx.GridRegion), amount * cfg.climateFactor(ctx.ClimateZone)
				},
			},
			{
				keywords: []string{"coal", "power"},
				selector: func(cfg Config, _ SiteContext, amount float64) (float64, float64) {
					return cfg.Factors.CoalPower, amount
				},
			},
			{
				keywords: []string{"explosive", "blasting"},
				selector: func(cfg Config, _ SiteContext, amount float64) (float64, float64) {
					return cfg.Factors.Explosives, amount
				},
			},
			{
				keywords: []string{"transport"},
				selector: func(cfg Config, ctx SiteContext, amount float64) (float64, float64) {
					if ctx.ClimateZone == "Montane" {
						return cfg.Factors.TransportHilly, amount
					}
					return cfg.Factors.TransportPlain, amount
				},
			},
		},
	}
}

// Resolve computes the CO2e tonnage for a scope 1/2 activity. The factor
// tables are in kg per unit; the division by 1000 converts to metric tons and
// is applied exactly once.
func (r *Resolver) Resolve(activityType string, amount float64, ctx SiteContext) Resolution {
	activity := strings.ToLower(activityType)

	factor := r.cfg.Factors.Default
	effective := amount
	for _, ru := range r.rules {
		if containsAny(activity, ru.keywords) {
			factor, effective = ru.selector(r.cfg, ctx, amount)
			break
		}
	}

	return Resolution{
		Factor:          factor,
		EffectiveAmount: effective,
		CO2eTons:        effective * factor / 1000,
	}
}

// ResolveValueChain computes the CO2e tonnage for a scope 3 category. Climate
// and grid context never apply on this path.
func (r *Resolver) ResolveValueChain(category string, amount float64) Resolution {
	c := strings.ToLower(category)
	vc := r.cfg.ValueChain

	factor := vc.Default
	switch {
	case strings.Contains(c, "goods"):
		factor = vc.PurchasedGoods
	case containsAny(c, []string{"freight", "transport", "logistics"}):
		factor = vc.FreightTransport
	case strings.Contains(c, "travel"):
		factor = vc.BusinessTravel
	case strings.Contains(c, "commut"):
		factor = vc.EmployeeCommuting
	case strings.Contains(c, "waste"):
		factor = vc.WasteDisposal
	}

	return Resolution{
		Factor:          factor,
		EffectiveAmount: amount,
		CO2eTons:        amount * factor / 1000,
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
