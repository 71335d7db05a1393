package handlers

import (
	"encoding/json"
	"math"
	"testing"

	"p9e.in/netzero/pkg/carbon"
)

func TestWithPercent(t *testing.T) {
	slices := []carbon.Slice{
		{Name: "Scope 1", Value: 30},
		{Name: "Scope 2", Value: 70},
	}

	out := withPercent(slices)
	if len(out) != 2 {
		t.Fatalf("got %d slices, want 2", len(out))
	}
	if math.Abs(out[0].Percent-30) > 1e-9 || math.Abs(out[1].Percent-70) > 1e-9 {
		t.Errorf("shares = %v, %v; want 30, 70", out[0].Percent, out[1].Percent)
	}
	if out[0].Name != "Scope 1" || out[1].Value != 70 {
		t.Errorf("slice fields lost in annotation: %+v", out)
	}

	raw, err := json.Marshal(out[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["name"] != "Scope 1" || decoded["percent"] != float64(30) {
		t.Errorf("annotated slice serialized as %s", raw)
	}
}

func TestWithPercentZeroTotal(t *testing.T) {
	out := withPercent([]carbon.Slice{{Name: "Scope 1"}, {Name: "Scope 2"}})
	for _, s := range out {
		if s.Percent != 0 {
			t.Errorf("zero total should yield zero shares, got %v", s.Percent)
		}
	}
}
