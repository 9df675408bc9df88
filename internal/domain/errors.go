package domain

import "fmt"

// InvalidInputError reports caller-correctable input problems: nonpositive
// income, a currency that does not match the jurisdiction, or a malformed
// jurisdiction parameter value. Never retried, never wrapped by the facade.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// UnsupportedJurisdictionError reports a jurisdiction code with no registered
// strategy when the caller has opted out of the fallback estimate.
type UnsupportedJurisdictionError struct {
	Code string
}

func (e *UnsupportedJurisdictionError) Error() string {
	return fmt.Sprintf("unsupported jurisdiction: %s", e.Code)
}

// ConfigurationError reports a bracket table or rule set that violates its
// structural invariants. This is a programming or data error and is fatal at
// strategy-registration time.
type ConfigurationError struct {
	Jurisdiction string
	Reason       string
}

func (e *ConfigurationError) Error() string {
	if e.Jurisdiction == "" {
		return "tax configuration error: " + e.Reason
	}
	return fmt.Sprintf("tax configuration error (%s): %s", e.Jurisdiction, e.Reason)
}
