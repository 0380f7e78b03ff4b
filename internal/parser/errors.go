package parser

import "fmt"

// UnsupportedVariantError is returned when no parser is registered for the
// requested statement variant code.
type UnsupportedVariantError struct {
	Code string
}

func (e *UnsupportedVariantError) Error() string {
	return fmt.Sprintf("unsupported statement variant %q (supported: HDFC, KOTAK, ICICI)", e.Code)
}

// InvalidConfigurationError is returned when the shared parser base is used
// without a concrete variant behind it. The base only defines the pipeline;
// it cannot classify, extract or categorize on its own.
type InvalidConfigurationError struct {
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	if e.Reason == "" {
		return "parser is not bound to a statement variant"
	}
	return fmt.Sprintf("invalid parser configuration: %s", e.Reason)
}
