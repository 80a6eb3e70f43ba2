package mcmi

import "fmt"

// BRMin and BRMax bound every reported Base-Rate value. Each cascade
// step clamps back into this range.
const (
	BRMin = 0
	BRMax = 115
)

func clampBR(v int) int {
	if v < BRMin {
		return BRMin
	}
	if v > BRMax {
		return BRMax
	}
	return v
}

// baseRate resolves a raw count through the sex-specific normative
// table. Raw counts outside the table's domain clamp to its boundary.
func baseRate(def ScaleDefinition, sex Sex, raw int) (int, error) {
	t, ok := def.BaseRates[sex]
	if !ok || len(t) == 0 {
		return 0, &ConfigError{ScaleID: def.ID, Reason: fmt.Sprintf("no base-rate table for sex %q", sex)}
	}
	return clampBR(t.Lookup(raw)), nil
}
