package transform

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Params is the string-keyed parameter set of one invocation. Keys are case
// sensitive; keys an algorithm does not declare are ignored.
type Params map[string]string

// args binds a parameter set to the algorithm being run so parse failures
// carry both names.
type args struct {
	algorithm string
	params    Params
}

func (a args) formatError(key, reason string) error {
	return &ParamError{
		Algorithm: a.algorithm,
		Param:     key,
		Value:     a.params[key],
		Kind:      ErrInvalidParameterFormat,
		Reason:    reason,
	}
}

// Int parses key as a base-10 integer.
func (a args) Int(key string) (int, error) {
	v, err := strconv.Atoi(a.params[key])
	if err != nil {
		return 0, a.formatError(key, "expected an integer")
	}
	return v, nil
}

// Float parses key as a finite decimal number.
func (a args) Float(key string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(a.params[key]), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, a.formatError(key, "expected a finite number")
	}
	return v, nil
}

// Char parses key as exactly one character.
func (a args) Char(key string) (rune, error) {
	s := a.params[key]
	if utf8.RuneCountInString(s) != 1 {
		return 0, a.formatError(key, "expected a single character")
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// OneOf parses key as a character restricted to allowed.
func (a args) OneOf(key, allowed string) (rune, error) {
	c, err := a.Char(key)
	if err != nil {
		return 0, err
	}
	if !strings.ContainsRune(allowed, c) {
		return 0, invalidValue(a.algorithm, key, a.params[key], "must be one of "+strings.Join(strings.Split(allowed, ""), ", "))
	}
	return c, nil
}

// IntRange parses key as an integer within [lo, hi].
func (a args) IntRange(key string, lo, hi int) (int, error) {
	v, err := a.Int(key)
	if err != nil {
		return 0, err
	}
	if v < lo || v > hi {
		return 0, invalidValue(a.algorithm, key, a.params[key], "must be between "+strconv.Itoa(lo)+" and "+strconv.Itoa(hi))
	}
	return v, nil
}
