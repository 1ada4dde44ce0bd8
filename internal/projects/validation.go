package projects

import (
	"fmt"
	"math"
	"strings"

	"github.com/measurebook/measurebook/internal/billing"
	"github.com/measurebook/measurebook/internal/platform/httpx"
)

// ValidateSaveSheet checks a submitted sheet before any mutation begins.
// Validation failures never leave partial writes behind.
func ValidateSaveSheet(req SaveSheetRequest) error {
	if req.GSTPercentage < 0 || req.GSTPercentage > 100 || math.IsNaN(req.GSTPercentage) {
		return fmt.Errorf("%w: gstPercentage must be between 0 and 100", httpx.ErrValidation)
	}
	for i, sec := range req.Sections {
		if strings.TrimSpace(sec.Title) == "" {
			return fmt.Errorf("%w: section %d: title is required", httpx.ErrValidation, i+1)
		}
		for j, item := range sec.Items {
			if _, err := billing.ParseUOM(item.UOM); err != nil {
				return fmt.Errorf("%w: section %d item %d: %s", httpx.ErrValidation, i+1, j+1, err)
			}
			if badNumber(item.Size) || badNumber(item.Qty) || badNumber(item.Rate) {
				return fmt.Errorf("%w: section %d item %d: size, qty and rate must be non-negative numbers", httpx.ErrValidation, i+1, j+1)
			}
		}
	}
	return nil
}

func badNumber(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0) || v < 0
}
