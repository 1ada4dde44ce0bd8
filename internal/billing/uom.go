package billing

import "fmt"

// UOM is a unit of measure for a line item. The set is closed: anything
// outside it is rejected at the boundary instead of passing through as a
// free-form string.
type UOM string

const (
	UOMNos UOM = "Nos" // count
	UOMSqm UOM = "Sqm" // area, square metres
	UOMCum UOM = "Cum" // volume, cubic metres
	UOMRmt UOM = "Rmt" // length, running metres
	UOMKg  UOM = "Kg"  // weight
)

// DefaultUOM seeds newly added items.
const DefaultUOM = UOMNos

// UOMs lists all valid units in display order.
func UOMs() []UOM {
	return []UOM{UOMNos, UOMSqm, UOMCum, UOMRmt, UOMKg}
}

// Valid reports whether u is a member of the closed unit set.
func (u UOM) Valid() bool {
	switch u {
	case UOMNos, UOMSqm, UOMCum, UOMRmt, UOMKg:
		return true
	}
	return false
}

// ParseUOM converts a wire string into a UOM, rejecting unknown units.
func ParseUOM(s string) (UOM, error) {
	u := UOM(s)
	if !u.Valid() {
		return "", fmt.Errorf("unknown unit of measure %q", s)
	}
	return u, nil
}
