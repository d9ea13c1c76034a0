package enum

import (
	"fmt"
	"reflect"
)

// registry maps an enum type name to the string values registered for
// it, so request fields like a shelf status or a week-start preference
// can be parsed without per-type switch statements.
var registry = map[string]any{}

type valueSet[T comparable] struct {
	byName map[string]T
}

// New registers value under its type and returns it, so enum values can
// be declared as package variables in one line.
func New[T comparable](value T) T {
	v := reflect.ValueOf(value)
	name := v.Type().Name()
	if _, ok := registry[name]; !ok {
		registry[name] = valueSet[T]{byName: make(map[string]T)}
	}

	registry[name].(valueSet[T]).byName[v.String()] = value
	return value
}

// ToEnum parses s into a registered value of T. Unregistered strings
// return an error, which the domains translate into a bad request.
func ToEnum[T comparable](s string) (T, error) {
	var zero T
	set, ok := registry[reflect.TypeOf(zero).Name()]
	if !ok {
		return zero, fmt.Errorf("not found enum type %T", zero)
	}

	value, ok := set.(valueSet[T]).byName[s]
	if !ok {
		return zero, fmt.Errorf("not found value %s in enum %T", s, zero)
	}

	return value, nil
}
