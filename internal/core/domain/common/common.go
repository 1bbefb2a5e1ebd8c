package common

import (
	"fmt"
	"strings"
)

type Optional[T any] struct {
	Value     T
	IsPresent bool
}

func (p *Optional[T]) String() string {
	if !p.IsPresent {
		return "[-]"
	}
	return fmt.Sprintf("[%v]", p.Value)
}

func NewOptional[T any](value T, isPresent bool) Optional[T] {
	return Optional[T]{Value: value, IsPresent: isPresent}
}

func (p Optional[T]) ValueOr(fallback T) T {
	if p.IsPresent {
		return p.Value
	}
	return fallback
}

// NonBlank returns a present optional unless the value consists of whitespace only.
// The value itself is kept as is.
func NonBlank(value string) Optional[string] {
	return NewOptional(value, strings.TrimSpace(value) != "")
}

func IsBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
