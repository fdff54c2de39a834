package transform

import (
	"errors"
	"fmt"
)

// Error kinds reported by Apply. Every failure wraps exactly one of them.
var (
	ErrUnknownAlgorithm       = errors.New("unknown algorithm")
	ErrMissingParameter       = errors.New("missing parameter")
	ErrInvalidParameterFormat = errors.New("invalid parameter format")
	ErrInvalidParameterValue  = errors.New("invalid parameter value")
)

// ParamError describes a rejected algorithm/parameter combination.
type ParamError struct {
	Algorithm string
	Param     string // empty for ErrUnknownAlgorithm and band-count failures
	Value     string
	Kind      error
	Reason    string
}

func (e *ParamError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Algorithm, e.Kind)
	if e.Param != "" {
		msg += fmt.Sprintf(" %q", e.Param)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" (value %q)", e.Value)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Unwrap exposes the error kind to errors.Is.
func (e *ParamError) Unwrap() error { return e.Kind }

// IsParameterError reports whether err was caused by the algorithm name or its
// parameters rather than by I/O or decoding.
func IsParameterError(err error) bool {
	return errors.Is(err, ErrUnknownAlgorithm) ||
		errors.Is(err, ErrMissingParameter) ||
		errors.Is(err, ErrInvalidParameterFormat) ||
		errors.Is(err, ErrInvalidParameterValue)
}

func invalidValue(algorithm, param, value, reason string) error {
	return &ParamError{Algorithm: algorithm, Param: param, Value: value, Kind: ErrInvalidParameterValue, Reason: reason}
}

func needBands(algorithm string, have, want int) error {
	if have >= want {
		return nil
	}
	return &ParamError{
		Algorithm: algorithm,
		Kind:      ErrInvalidParameterValue,
		Reason:    fmt.Sprintf("the image must have at least %d bands, has %d", want, have),
	}
}
