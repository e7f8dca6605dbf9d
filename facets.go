package xsd

import (
	"strconv"
	"strings"
)

// Facet is a constraining facet of a simple type restriction
type Facet interface {
	// Name returns the facet element name, e.g. "maxLength".
	Name() string
	// Value returns the lexical value as written in the schema.
	Value() string
}

// PatternFacet restricts the lexical space with a regular expression
type PatternFacet struct {
	Pattern string
}

func (f *PatternFacet) Name() string  { return "pattern" }
func (f *PatternFacet) Value() string { return f.Pattern }

// EnumerationFacet holds the allowed values of a restriction. Consecutive
// xs:enumeration elements are combined into one facet.
type EnumerationFacet struct {
	Values []string
}

func (f *EnumerationFacet) Name() string  { return "enumeration" }
func (f *EnumerationFacet) Value() string { return strings.Join(f.Values, " ") }

// LengthFacet requires an exact length
type LengthFacet struct {
	Length int
}

func (f *LengthFacet) Name() string  { return "length" }
func (f *LengthFacet) Value() string { return strconv.Itoa(f.Length) }

// MinLengthFacet requires a minimum length
type MinLengthFacet struct {
	Length int
}

func (f *MinLengthFacet) Name() string  { return "minLength" }
func (f *MinLengthFacet) Value() string { return strconv.Itoa(f.Length) }

// MaxLengthFacet requires a maximum length
type MaxLengthFacet struct {
	Length int
}

func (f *MaxLengthFacet) Name() string  { return "maxLength" }
func (f *MaxLengthFacet) Value() string { return strconv.Itoa(f.Length) }

// MinInclusiveFacet is the inclusive lower bound of an ordered type
type MinInclusiveFacet struct {
	Bound string
}

func (f *MinInclusiveFacet) Name() string  { return "minInclusive" }
func (f *MinInclusiveFacet) Value() string { return f.Bound }

// MaxInclusiveFacet is the inclusive upper bound of an ordered type
type MaxInclusiveFacet struct {
	Bound string
}

func (f *MaxInclusiveFacet) Name() string  { return "maxInclusive" }
func (f *MaxInclusiveFacet) Value() string { return f.Bound }

// MinExclusiveFacet is the exclusive lower bound of an ordered type
type MinExclusiveFacet struct {
	Bound string
}

func (f *MinExclusiveFacet) Name() string  { return "minExclusive" }
func (f *MinExclusiveFacet) Value() string { return f.Bound }

// MaxExclusiveFacet is the exclusive upper bound of an ordered type
type MaxExclusiveFacet struct {
	Bound string
}

func (f *MaxExclusiveFacet) Name() string  { return "maxExclusive" }
func (f *MaxExclusiveFacet) Value() string { return f.Bound }

// TotalDigitsFacet limits the number of digits of a decimal
type TotalDigitsFacet struct {
	Digits int
}

func (f *TotalDigitsFacet) Name() string  { return "totalDigits" }
func (f *TotalDigitsFacet) Value() string { return strconv.Itoa(f.Digits) }

// FractionDigitsFacet limits the number of fraction digits of a decimal
type FractionDigitsFacet struct {
	Digits int
}

func (f *FractionDigitsFacet) Name() string  { return "fractionDigits" }
func (f *FractionDigitsFacet) Value() string { return strconv.Itoa(f.Digits) }

// WhiteSpaceFacet controls whitespace normalization
type WhiteSpaceFacet struct {
	Mode string // "preserve", "replace", or "collapse"
}

func (f *WhiteSpaceFacet) Name() string  { return "whiteSpace" }
func (f *WhiteSpaceFacet) Value() string { return f.Mode }

// ParseFacet builds the facet for a restriction child element. It returns nil
// for unknown facet names and for length-like facets whose value is not an
// integer.
func ParseFacet(name string, value string) Facet {
	switch name {
	case "pattern":
		return &PatternFacet{Pattern: value}
	case "enumeration":
		return &EnumerationFacet{Values: []string{value}}
	case "length":
		if v, err := strconv.Atoi(value); err == nil {
			return &LengthFacet{Length: v}
		}
	case "minLength":
		if v, err := strconv.Atoi(value); err == nil {
			return &MinLengthFacet{Length: v}
		}
	case "maxLength":
		if v, err := strconv.Atoi(value); err == nil {
			return &MaxLengthFacet{Length: v}
		}
	case "minInclusive":
		return &MinInclusiveFacet{Bound: value}
	case "maxInclusive":
		return &MaxInclusiveFacet{Bound: value}
	case "minExclusive":
		return &MinExclusiveFacet{Bound: value}
	case "maxExclusive":
		return &MaxExclusiveFacet{Bound: value}
	case "totalDigits":
		if v, err := strconv.Atoi(value); err == nil {
			return &TotalDigitsFacet{Digits: v}
		}
	case "fractionDigits":
		if v, err := strconv.Atoi(value); err == nil {
			return &FractionDigitsFacet{Digits: v}
		}
	case "whiteSpace":
		return &WhiteSpaceFacet{Mode: value}
	}
	return nil
}
