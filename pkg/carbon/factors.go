package carbon

// ActivityFactors holds the base emission factors for scope 1/2 activities,
// in kg CO2e per input unit (litre, kWh, kg, ton-km).
type ActivityFactors struct {
	Diesel         float64
	Explosives     float64
	CoalPower      float64
	TransportPlain float64
	TransportHilly float64
	Default        float64
}

// ValueChainFactors holds the scope 3 category factors, in kg CO2e per unit
// (spend, ton-km, passenger-km or kg depending on the category).
type ValueChainFactors struct {
	PurchasedGoods    float64
	FreightTransport  float64
	BusinessTravel    float64
	EmployeeCommuting float64
	WasteDisposal     float64
	Default           float64
}

// Config is the immutable factor set a Resolver is built from. Grid factors are
// keyed by grid region name, climate adjustments by climate zone name; lookups
// that miss fall back to GridDefault / 1.0.
type Config struct {
	Factors           ActivityFactors
	ValueChain        ValueChainFactors
	GridFactors       map[string]float64
	GridDefault       float64
	ClimateAdjustment map[string]float64
}

// DefaultConfig returns the built-in factor set: CEA 2023 baseline grid
// intensities for the Indian regional grids plus static activity factors.
func DefaultConfig() Config {
	return Config{
		Factors: ActivityFactors{
			Diesel:         2.68,
			Explosives:     0.19,
			CoalPower:      0.95,
			TransportPlain: 0.15,
			TransportHilly: 0.22,
			Default:        0.5,
		},
		ValueChain: ValueChainFactors{
			PurchasedGoods:    0.35,
			FreightTransport:  0.12,
			BusinessTravel:    0.18,
			EmployeeCommuting: 0.15,
			WasteDisposal:     0.45,
			Default:           0.5,
		},
		GridFactors: map[string]float64{
			"Northern":      0.82,
			"Eastern":       0.85,
			"Western":       0.84,
			"Southern":      0.72,
			"North-Eastern": 0.65,
		},
		GridDefault: 0.81,
		ClimateAdjustment: map[string]float64{
			"Arid":         1.08,
			"Hot & Dry":    1.06,
			"Tropical":     1.04,
			"Warm & Humid": 1.05,
			"Composite":    1.03,
			"Montane":      0.97,
		},
	}
}

func (c Config) gridFactor(region string) float64 {
	if f, ok := c.GridFactors[region]; ok {
		return f
	}
	return c.GridDefault
}

func (c Config) climateFactor(zone string) float64 {
	if f, ok := c.ClimateAdjustment[zone]; ok {
		return f
	}
	return 1.0
}
