package xsd

import "strings"

// TypeCode identifies the built-in XSD datatype a simple type ultimately
// derives from.
type TypeCode int

const (
	TypeCodeNone TypeCode = iota
	TypeCodeAnyType
	TypeCodeAnySimpleType

	// Primitive types
	TypeCodeString
	TypeCodeBoolean
	TypeCodeDecimal
	TypeCodeFloat
	TypeCodeDouble
	TypeCodeDuration
	TypeCodeDateTime
	TypeCodeTime
	TypeCodeDate
	TypeCodeGYearMonth
	TypeCodeGYear
	TypeCodeGMonthDay
	TypeCodeGDay
	TypeCodeGMonth
	TypeCodeHexBinary
	TypeCodeBase64Binary
	TypeCodeAnyURI
	TypeCodeQName
	TypeCodeNotation

	// Derived types - strings
	TypeCodeNormalizedString
	TypeCodeToken
	TypeCodeLanguage
	TypeCodeName
	TypeCodeNCName
	TypeCodeID
	TypeCodeIDRef
	TypeCodeIDRefs
	TypeCodeEntity
	TypeCodeEntities
	TypeCodeNmToken
	TypeCodeNmTokens

	// Derived types - numeric
	TypeCodeInteger
	TypeCodeNonPositiveInteger
	TypeCodeNegativeInteger
	TypeCodeLong
	TypeCodeInt
	TypeCodeShort
	TypeCodeByte
	TypeCodeNonNegativeInteger
	TypeCodeUnsignedLong
	TypeCodeUnsignedInt
	TypeCodeUnsignedShort
	TypeCodeUnsignedByte
	TypeCodePositiveInteger
)

// BuiltinType describes a built-in XSD type
type BuiltinType struct {
	Name string
	Code TypeCode
}

var (
	builtinTypes  = map[string]*BuiltinType{}
	typeCodeNames = map[TypeCode]string{}
)

func init() {
	registerBuiltinTypes()
}

func registerBuiltinTypes() {
	register := func(name string, code TypeCode) {
		builtinTypes[name] = &BuiltinType{Name: name, Code: code}
		typeCodeNames[code] = name
	}

	register("anyType", TypeCodeAnyType)
	register("anySimpleType", TypeCodeAnySimpleType)

	// Primitive types
	register("string", TypeCodeString)
	register("boolean", TypeCodeBoolean)
	register("decimal", TypeCodeDecimal)
	register("float", TypeCodeFloat)
	register("double", TypeCodeDouble)
	register("duration", TypeCodeDuration)
	register("dateTime", TypeCodeDateTime)
	register("time", TypeCodeTime)
	register("date", TypeCodeDate)
	register("gYearMonth", TypeCodeGYearMonth)
	register("gYear", TypeCodeGYear)
	register("gMonthDay", TypeCodeGMonthDay)
	register("gDay", TypeCodeGDay)
	register("gMonth", TypeCodeGMonth)
	register("hexBinary", TypeCodeHexBinary)
	register("base64Binary", TypeCodeBase64Binary)
	register("anyURI", TypeCodeAnyURI)
	register("QName", TypeCodeQName)
	register("NOTATION", TypeCodeNotation)

	// Derived types - strings
	register("normalizedString", TypeCodeNormalizedString)
	register("token", TypeCodeToken)
	register("language", TypeCodeLanguage)
	register("Name", TypeCodeName)
	register("NCName", TypeCodeNCName)
	register("ID", TypeCodeID)
	register("IDREF", TypeCodeIDRef)
	register("IDREFS", TypeCodeIDRefs)
	register("ENTITY", TypeCodeEntity)
	register("ENTITIES", TypeCodeEntities)
	register("NMTOKEN", TypeCodeNmToken)
	register("NMTOKENS", TypeCodeNmTokens)

	// Derived types - numeric
	register("integer", TypeCodeInteger)
	register("nonPositiveInteger", TypeCodeNonPositiveInteger)
	register("negativeInteger", TypeCodeNegativeInteger)
	register("long", TypeCodeLong)
	register("int", TypeCodeInt)
	register("short", TypeCodeShort)
	register("byte", TypeCodeByte)
	register("nonNegativeInteger", TypeCodeNonNegativeInteger)
	register("unsignedLong", TypeCodeUnsignedLong)
	register("unsignedInt", TypeCodeUnsignedInt)
	register("unsignedShort", TypeCodeUnsignedShort)
	register("unsignedByte", TypeCodeUnsignedByte)
	register("positiveInteger", TypeCodePositiveInteger)
}

// GetBuiltinType returns the built-in type registered under name
func GetBuiltinType(name string) *BuiltinType {
	// Strip namespace prefix if present
	if idx := strings.Index(name, ":"); idx >= 0 {
		name = name[idx+1:]
	}
	return builtinTypes[name]
}

// IsBuiltinType checks if a type is a built-in XSD type
func IsBuiltinType(name string) bool {
	return GetBuiltinType(name) != nil
}

// String returns the XSD local name of the type code.
func (c TypeCode) String() string {
	if name, ok := typeCodeNames[c]; ok {
		return name
	}
	return "none"
}

// IsUnboundedInteger reports whether values of the type have no fixed width
// (xs:integer and its sign-restricted derivations).
func (c TypeCode) IsUnboundedInteger() bool {
	switch c {
	case TypeCodeInteger,
		TypeCodePositiveInteger,
		TypeCodeNonNegativeInteger,
		TypeCodeNegativeInteger,
		TypeCodeNonPositiveInteger:
		return true
	}
	return false
}
