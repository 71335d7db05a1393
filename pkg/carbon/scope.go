package carbon

import "strings"

// Scope is a GHG Protocol accounting scope.
type Scope string

const (
	Scope1 Scope = "scope1"
	Scope2 Scope = "scope2"
	Scope3 Scope = "scope3"
)

// ClassifyScope assigns an accounting scope from the activity descriptor alone.
// Purchased electricity is scope 2, everything else on this path is scope 1.
// Value-chain entries never pass through here; they are scope 3 by construction.
func ClassifyScope(activityType string) Scope {
	a := strings.ToLower(activityType)
	if strings.Contains(a, "electricity") || strings.Contains(a, "grid") {
		return Scope2
	}
	return Scope1
}
