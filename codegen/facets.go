package codegen

import (
	"fmt"
	"strings"

	xsd "github.com/agentflare-ai/go-xsdgen"
)

// FacetRemarks describes the facets of a restriction, one line per facet
// value. It returns "" when none of the described facets is present.
func FacetRemarks(facets []xsd.Facet) string {
	var lines []string
	for _, f := range facets {
		switch f := f.(type) {
		case *xsd.MaxLengthFacet:
			lines = append(lines, fmt.Sprintf("MaxLength: %d", f.Length))
		case *xsd.MinLengthFacet:
			lines = append(lines, fmt.Sprintf("MinLength: %d", f.Length))
		case *xsd.MinInclusiveFacet:
			lines = append(lines, "MinInclusive: "+f.Bound)
		case *xsd.MaxInclusiveFacet:
			lines = append(lines, "MaxInclusive: "+f.Bound)
		case *xsd.PatternFacet:
			lines = append(lines, "Pattern: "+f.Pattern)
		case *xsd.EnumerationFacet:
			for _, v := range f.Values {
				lines = append(lines, "Enumeration: "+v)
			}
		case *xsd.WhiteSpaceFacet:
			lines = append(lines, "WhiteSpace: "+f.Mode)
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// ValidationAnnotations derives the validation attributes of a restriction:
// a string length bound when maxLength is present and a pattern constraint
// when at least one pattern is present.
func ValidationAnnotations(facets []xsd.Facet) []Annotation {
	var (
		maxLength, minLength Optional[int]
		patterns             []string
	)
	for _, f := range facets {
		switch f := f.(type) {
		case *xsd.MaxLengthFacet:
			maxLength = Some(f.Length)
		case *xsd.MinLengthFacet:
			minLength = Some(f.Length)
		case *xsd.PatternFacet:
			patterns = append(patterns, f.Pattern)
		}
	}

	var out []Annotation
	if n, ok := maxLength.Get(); ok {
		out = append(out, StringLengthConstraint{Max: n, Min: minLength})
	}
	switch len(patterns) {
	case 0:
	case 1:
		out = append(out, PatternConstraint{Pattern: patterns[0]})
	default:
		// Patterns of one restriction step are alternatives
		alternatives := make([]string, len(patterns))
		for i, p := range patterns {
			alternatives[i] = "(?:" + p + ")"
		}
		out = append(out, PatternConstraint{Pattern: strings.Join(alternatives, "|")})
	}
	return out
}
