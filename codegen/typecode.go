package codegen

import (
	"fmt"
	"strconv"
	"strings"

	xsd "github.com/agentflare-ai/go-xsdgen"
)

// scalarTypes maps built-in types to C# scalar types. Integer types without
// a fixed width are kept as strings.
var scalarTypes = map[xsd.TypeCode]string{
	xsd.TypeCodeDateTime:           "DateTime",
	xsd.TypeCodeDate:               "DateTime",
	xsd.TypeCodeTime:               "DateTime",
	xsd.TypeCodeString:             "string",
	xsd.TypeCodeToken:              "string",
	xsd.TypeCodeNormalizedString:   "string",
	xsd.TypeCodeLanguage:           "string",
	xsd.TypeCodeName:               "string",
	xsd.TypeCodeNCName:             "string",
	xsd.TypeCodeID:                 "string",
	xsd.TypeCodeIDRef:              "string",
	xsd.TypeCodeEntity:             "string",
	xsd.TypeCodeNmToken:            "string",
	xsd.TypeCodeNotation:           "string",
	xsd.TypeCodeAnyURI:             "string",
	xsd.TypeCodeDuration:           "string",
	xsd.TypeCodeGYear:              "string",
	xsd.TypeCodeGYearMonth:         "string",
	xsd.TypeCodeGMonth:             "string",
	xsd.TypeCodeGMonthDay:          "string",
	xsd.TypeCodeGDay:               "string",
	xsd.TypeCodeInteger:            "string",
	xsd.TypeCodePositiveInteger:    "string",
	xsd.TypeCodeNonNegativeInteger: "string",
	xsd.TypeCodeNegativeInteger:    "string",
	xsd.TypeCodeNonPositiveInteger: "string",
	xsd.TypeCodeDouble:             "double",
	xsd.TypeCodeFloat:              "float",
	xsd.TypeCodeDecimal:            "decimal",
	xsd.TypeCodeBoolean:            "bool",
	xsd.TypeCodeShort:              "short",
	xsd.TypeCodeInt:                "int",
	xsd.TypeCodeLong:               "long",
	xsd.TypeCodeByte:               "byte",
	xsd.TypeCodeUnsignedByte:       "byte",
	xsd.TypeCodeUnsignedShort:      "ushort",
	xsd.TypeCodeUnsignedInt:        "uint",
	xsd.TypeCodeUnsignedLong:       "ulong",
	xsd.TypeCodeBase64Binary:       "byte[]",
	xsd.TypeCodeHexBinary:          "byte[]",
	xsd.TypeCodeQName:              "System.Xml.XmlQualifiedName",
}

// ScalarType returns the C# type used for values of a built-in type
func ScalarType(code xsd.TypeCode) (string, error) {
	if scalar, ok := scalarTypes[code]; ok {
		return scalar, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnmappedPrimitive, code)
}

// DataTypeTag returns the XmlSerializer DataType for a built-in type. It is
// absent for xs:string, the serializer default, and for types the
// serializer has no DataType for.
func DataTypeTag(code xsd.TypeCode) Optional[string] {
	switch code {
	case xsd.TypeCodeNone,
		xsd.TypeCodeString,
		xsd.TypeCodeAnyType,
		xsd.TypeCodeAnySimpleType,
		xsd.TypeCodeIDRefs,
		xsd.TypeCodeEntities,
		xsd.TypeCodeNmTokens:
		return None[string]()
	}
	return Some(code.String())
}

// NarrowTypeCode replaces an integer type without a fixed width by int or
// long when the facets bound it on both sides and both bounds fit. Bounds
// that fail to parse leave the code unchanged.
func NarrowTypeCode(code xsd.TypeCode, facets []xsd.Facet) xsd.TypeCode {
	if !code.IsUnboundedInteger() {
		return code
	}

	var minExclusive, minInclusive, maxExclusive, maxInclusive Optional[string]
	for _, f := range facets {
		switch f := f.(type) {
		case *xsd.MinExclusiveFacet:
			if !minExclusive.IsPresent() {
				minExclusive = Some(f.Bound)
			}
		case *xsd.MinInclusiveFacet:
			if !minInclusive.IsPresent() {
				minInclusive = Some(f.Bound)
			}
		case *xsd.MaxExclusiveFacet:
			if !maxExclusive.IsPresent() {
				maxExclusive = Some(f.Bound)
			}
		case *xsd.MaxInclusiveFacet:
			if !maxInclusive.IsPresent() {
				maxInclusive = Some(f.Bound)
			}
		}
	}

	upper := maxExclusive
	if !upper.IsPresent() {
		upper = maxInclusive
	}
	lower := minExclusive
	if !lower.IsPresent() {
		lower = minInclusive
	}
	if !upper.IsPresent() || !lower.IsPresent() {
		return code
	}

	hi, _ := upper.Get()
	lo, _ := lower.Get()
	switch {
	case fitsInt(hi, 32) && fitsInt(lo, 32):
		return xsd.TypeCodeInt
	case fitsInt(hi, 64) && fitsInt(lo, 64):
		return xsd.TypeCodeLong
	}
	return code
}

func fitsInt(s string, bitSize int) bool {
	_, err := strconv.ParseInt(strings.TrimSpace(s), 10, bitSize)
	return err == nil
}
