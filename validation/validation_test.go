package validation

import "testing"

func TestViolations(t *testing.T) {
	v := Violations{}
	if !v.Empty() {
		t.Fatalf("fresh violations not empty")
	}
	Required("name", "", v)
	Required("note", "ok", v)
	PositiveFloat("amount", 0, v)
	NonNegativeFloat("price", -1, v)
	MinInt("quantity", 0, 1, v)
	if v.Empty() {
		t.Fatalf("violations should not be empty")
	}
	for _, field := range []string{"name", "amount", "price", "quantity"} {
		if v[field] == "" {
			t.Fatalf("missing violation for %s: %v", field, v)
		}
	}
	if v["note"] != "" {
		t.Fatalf("valid field flagged: %v", v)
	}
}
