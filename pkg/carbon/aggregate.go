package carbon

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// FlatRecord is one persisted emission row joined with its site attributes,
// the input shape for every rollup.
type FlatRecord struct {
	Activity   string
	Scope      string
	SiteName   string
	State      string
	GridRegion string
	Date       time.Time
	CO2eTons   float64
}

// Slice is one group of a rollup, shaped for chart consumers.
type Slice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// TrendPoint is one month of the emissions trend.
type TrendPoint struct {
	Name      string  `json:"name"`
	Emissions float64 `json:"emissions"`
}

// Palette is the fixed color assignment injected into an Aggregator.
type Palette struct {
	Activity map[string]string
	Scope    map[string]string
	Grid     map[string]string
	Fallback string
}

// DefaultPalette returns the brand colors used by the dashboards.
func DefaultPalette() Palette {
	return Palette{
		Activity: map[string]string{
			"diesel":             "#f59e0b",
			"diesel_combustion":  "#f59e0b",
			"grid_electricity":   "#3b82f6",
			"explosives":         "#ef4444",
			"explosives_anfo":    "#ef4444",
			"coal_power":         "#8b5cf6",
			"captive_coal_power": "#8b5cf6",
		},
		Scope: map[string]string{
			"scope1": "#10b981",
			"scope2": "#6366f1",
			"scope3": "#a855f7",
		},
		Grid: map[string]string{
			"Northern":      "#3b82f6",
			"Southern":      "#10b981",
			"Eastern":       "#f59e0b",
			"Western":       "#8b5cf6",
			"North-Eastern": "#ec4899",
		},
		Fallback: "#94a3b8",
	}
}

// Aggregator computes the read-path rollups. All methods are pure functions
// over the given records; none depends on another's output.
type Aggregator struct {
	palette Palette
}

func NewAggregator(p Palette) *Aggregator {
	return &Aggregator{palette: p}
}

// group accumulates one rollup bucket, keeping the earliest date seen so
// time-bucketed rollups can sort by occurrence rather than label.
type group struct {
	key      string
	value    float64
	earliest time.Time
}

// groupBy folds records into buckets in first-seen key order, which keeps
// color assignment stable for a given record ordering.
func groupBy(records []FlatRecord, keyOf func(FlatRecord) string) []group {
	index := make(map[string]int)
	var groups []group
	for _, rec := range records {
		key := keyOf(rec)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, group{key: key, earliest: rec.Date})
		}
		groups[i].value += rec.CO2eTons
		if rec.Date.Before(groups[i].earliest) {
			groups[i].earliest = rec.Date
		}
	}
	return groups
}

// ByActivity sums CO2e per activity label. Known activities use the fixed
// palette; unknown ones get a deterministic hue spread over the color wheel.
func (a *Aggregator) ByActivity(records []FlatRecord) []Slice {
	groups := groupBy(records, func(r FlatRecord) string { return r.Activity })

	slices := make([]Slice, 0, len(groups))
	for i, g := range groups {
		normalized := strings.ReplaceAll(strings.ToLower(g.key), " ", "_")
		color, ok := a.palette.Activity[normalized]
		if !ok {
			color = hueColor(i, len(groups))
		}
		slices = append(slices, Slice{
			Name:  displayActivity(g.key),
			Value: g.value,
			Color: color,
		})
	}
	return slices
}

// ByScope sums CO2e per accounting scope.
func (a *Aggregator) ByScope(records []FlatRecord) []Slice {
	groups := groupBy(records, func(r FlatRecord) string { return r.Scope })

	slices := make([]Slice, 0, len(groups))
	for _, g := range groups {
		color, ok := a.palette.Scope[g.key]
		if !ok {
			color = a.palette.Fallback
		}
		slices = append(slices, Slice{
			Name:  displayScope(g.key),
			Value: g.value,
			Color: color,
		})
	}
	return slices
}

// BySite sums CO2e per site name, largest emitters first.
func (a *Aggregator) BySite(records []FlatRecord) []Slice {
	groups := groupBy(records, func(r FlatRecord) string { return r.SiteName })

	slices := make([]Slice, 0, len(groups))
	for _, g := range groups {
		slices = append(slices, Slice{Name: g.key, Value: g.value})
	}
	sortByValueDesc(slices)
	return slices
}

// ByState sums CO2e per administrative region of the owning site.
func (a *Aggregator) ByState(records []FlatRecord) []Slice {
	groups := groupBy(records, func(r FlatRecord) string { return r.State })

	slices := make([]Slice, 0, len(groups))
	for _, g := range groups {
		name := g.key
		if name == "" {
			name = "Unknown"
		}
		slices = append(slices, Slice{Name: name, Value: g.value})
	}
	sortByValueDesc(slices)
	return slices
}

// ByGrid sums CO2e per grid region of the owning site.
func (a *Aggregator) ByGrid(records []FlatRecord) []Slice {
	groups := groupBy(records, func(r FlatRecord) string { return r.GridRegion })

	slices := make([]Slice, 0, len(groups))
	for _, g := range groups {
		name := "Unknown"
		color := a.palette.Fallback
		if g.key != "" {
			name = g.key + " Grid"
			if c, ok := a.palette.Grid[g.key]; ok {
				color = c
			}
		}
		slices = append(slices, Slice{Name: name, Value: g.value, Color: color})
	}
	sortByValueDesc(slices)
	return slices
}

// MonthlyTrend sums CO2e per calendar month abbreviation, ordered by the
// earliest date observed in each month bucket so cross-year data keeps its
// chronological order.
func (a *Aggregator) MonthlyTrend(records []FlatRecord) []TrendPoint {
	groups := groupBy(records, func(r FlatRecord) string { return r.Date.Format("Jan") })
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].earliest.Before(groups[j].earliest)
	})

	points := make([]TrendPoint, 0, len(groups))
	for _, g := range groups {
		points = append(points, TrendPoint{Name: g.key, Emissions: g.value})
	}
	return points
}

// Total sums CO2e over all records.
func Total(records []FlatRecord) float64 {
	var total float64
	for _, rec := range records {
		total += rec.CO2eTons
	}
	return total
}

// PercentShares returns each slice's percentage contribution to the whole.
// A zero total yields all zeros rather than dividing by zero.
func PercentShares(slices []Slice) []float64 {
	var total float64
	for _, s := range slices {
		total += s.Value
	}

	shares := make([]float64, len(slices))
	if total == 0 {
		return shares
	}
	for i, s := range slices {
		shares[i] = s.Value / total * 100
	}
	return shares
}

// TopActivities returns the n largest activity groups by CO2e.
func (a *Aggregator) TopActivities(records []FlatRecord, n int) []Slice {
	slices := a.ByActivity(records)
	sortByValueDesc(slices)
	if len(slices) > n {
		slices = slices[:n]
	}
	return slices
}

func sortByValueDesc(slices []Slice) {
	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Value > slices[j].Value
	})
}

// hueColor spreads unknown categories evenly over the color wheel. The result
// only depends on the group's position and the group count, so colors are
// stable across reloads of the same data.
func hueColor(index, total int) string {
	if total < 1 {
		total = 1
	}
	hue := float64(index) * (360 / float64(total))
	hue = hue - 360*float64(int(hue/360))
	return fmt.Sprintf("hsl(%s, 70%%, 60%%)", strconv.FormatFloat(hue, 'f', -1, 64))
}

// displayActivity turns "diesel_combustion" into "Diesel combustion".
func displayActivity(raw string) string {
	if raw == "" {
		return raw
	}
	return strings.ToUpper(raw[:1]) + strings.ReplaceAll(raw[1:], "_", " ")
}

// displayScope turns "scope1" into "Scope 1". Unrecognized values are
// returned with just the leading capital.
func displayScope(raw string) string {
	if len(raw) > 5 {
		return strings.ToUpper(raw[:1]) + raw[1:5] + " " + raw[5:]
	}
	if raw == "" {
		return raw
	}
	return strings.ToUpper(raw[:1]) + raw[1:]
}
