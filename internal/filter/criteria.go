package filter

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidCriteria is wrapped by every validation failure.
var ErrInvalidCriteria = errors.New("invalid filter criteria")

// Criteria narrows a market coin list. Nil bounds are unconstrained.
type Criteria struct {
	MinPrice    *float64
	MaxPrice    *float64
	MinVolume   *float64
	OnlyGainers bool
}

// Validate checks that every set bound is a non-negative number and that
// MaxPrice is not below MinPrice.
func (c Criteria) Validate() error {
	bounds := []struct {
		name string
		val  *float64
	}{
		{"min price", c.MinPrice},
		{"max price", c.MaxPrice},
		{"min volume", c.MinVolume},
	}
	for _, b := range bounds {
		if b.val == nil {
			continue
		}
		if math.IsNaN(*b.val) || math.IsInf(*b.val, 0) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidCriteria, b.name)
		}
		if *b.val < 0 {
			return fmt.Errorf("%w: %s must be >= 0", ErrInvalidCriteria, b.name)
		}
	}
	if c.MinPrice != nil && c.MaxPrice != nil && *c.MaxPrice < *c.MinPrice {
		return fmt.Errorf("%w: max price must be >= min price", ErrInvalidCriteria)
	}
	return nil
}

// IsZero reports whether no constraint is set.
func (c Criteria) IsZero() bool {
	return c.MinPrice == nil && c.MaxPrice == nil && c.MinVolume == nil && !c.OnlyGainers
}

// ParseCriteria builds Criteria from form-style input where an empty string
// leaves the bound unset, then validates it.
func ParseCriteria(minPrice, maxPrice, minVolume string, onlyGainers bool) (Criteria, error) {
	var (
		c   = Criteria{OnlyGainers: onlyGainers}
		err error
	)
	if c.MinPrice, err = parseBound("min price", minPrice); err != nil {
		return Criteria{}, err
	}
	if c.MaxPrice, err = parseBound("max price", maxPrice); err != nil {
		return Criteria{}, err
	}
	if c.MinVolume, err = parseBound("min volume", minVolume); err != nil {
		return Criteria{}, err
	}
	if err := c.Validate(); err != nil {
		return Criteria{}, err
	}
	return c, nil
}

func parseBound(name, input string) (*float64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %q is not a number", ErrInvalidCriteria, name, input)
	}
	return &v, nil
}

// Float returns a pointer to v, for building Criteria literals.
func Float(v float64) *float64 {
	return &v
}
