package compare

import (
	"encoding/json"
	"fmt"

	"github.com/itssarojkr/financial-assistant-sub002/internal/calculation"
)

// JSONFormatter formats comparison results as indented JSON.
type JSONFormatter struct{}

// Format marshals the comparison set, rounding every breakdown for display.
func (jf *JSONFormatter) Format(set *calculation.ComparisonSet) (string, error) {
	display := calculation.ComparisonSet{
		Base:     set.Base.Rounded(),
		Variants: make([]calculation.VariantResult, 0, len(set.Variants)),
	}
	for _, v := range set.Variants {
		v.Result = v.Result.Rounded()
		display.Variants = append(display.Variants, v)
	}

	data, err := json.MarshalIndent(display, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal comparison: %w", err)
	}
	return string(data), nil
}
