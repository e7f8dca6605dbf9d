package codegen

import (
	"fmt"
	"strconv"
	"strings"
)

// Annotation is a C# attribute attached to a generated class or property.
// The set of annotations is closed: every variant is declared in this file
// and handled by RenderAnnotation.
type Annotation interface {
	annotation()
}

// Form is the XmlSchemaForm of an element or attribute binding
type Form string

const (
	FormQualified   Form = "Qualified"
	FormUnqualified Form = "Unqualified"
)

// ElementBinding serializes a property as a child element
type ElementBinding struct {
	ElementName Optional[string]
	Namespace   Optional[string]
	DataType    Optional[string]
	Form        Optional[Form]
	IsNullable  Optional[bool]
}

// AttributeBinding serializes a property as an XML attribute
type AttributeBinding struct {
	AttributeName Optional[string]
	Namespace     Optional[string]
	DataType      Optional[string]
	Form          Optional[Form]
}

// TextBinding serializes a property as the text content of its class
type TextBinding struct {
	DataType Optional[string]
}

// TypeBinding sets the XML namespace of a generated class
type TypeBinding struct {
	Namespace string
}

// RootBinding marks a class as a document element
type RootBinding struct {
	Namespace string
}

// XMLIgnore excludes a member from XML serialization
type XMLIgnore struct{}

// JSONIgnore excludes a member from JSON serialization
type JSONIgnore struct{}

// JSONPropertyName sets the JSON member name of a property
type JSONPropertyName struct {
	Name string
}

// StringLengthConstraint bounds the length of a string value
type StringLengthConstraint struct {
	Max int
	Min Optional[int]
}

// PatternConstraint requires a value to match a regular expression
type PatternConstraint struct {
	Pattern string
}

func (ElementBinding) annotation()         {}
func (AttributeBinding) annotation()       {}
func (TextBinding) annotation()            {}
func (TypeBinding) annotation()            {}
func (RootBinding) annotation()            {}
func (XMLIgnore) annotation()              {}
func (JSONIgnore) annotation()             {}
func (JSONPropertyName) annotation()       {}
func (StringLengthConstraint) annotation() {}
func (PatternConstraint) annotation()      {}

// IsValidation reports whether a is a data annotation validation attribute
func IsValidation(a Annotation) bool {
	switch a.(type) {
	case StringLengthConstraint, PatternConstraint:
		return true
	}
	return false
}

// IsJSONHint reports whether a targets the JSON serializer
func IsJSONHint(a Annotation) bool {
	switch a.(type) {
	case JSONIgnore, JSONPropertyName:
		return true
	}
	return false
}

// arguments collects the rendered arguments of an attribute. Positional
// arguments render before named ones.
type arguments struct {
	positional []string
	named      [][2]string
}

func (a *arguments) add(value string) {
	a.positional = append(a.positional, value)
}

func (a *arguments) set(key, value string) {
	a.named = append(a.named, [2]string{key, value})
}

// setOptional appends a named argument only when v is present
func setOptional[T any](a *arguments, key string, v Optional[T], format func(T) string) {
	if value, ok := v.Get(); ok {
		a.set(key, format(value))
	}
}

func (a *arguments) render(tag string) string {
	if len(a.positional) == 0 && len(a.named) == 0 {
		return tag
	}

	parts := make([]string, 0, len(a.positional)+len(a.named))
	parts = append(parts, a.positional...)
	for _, kv := range a.named {
		parts = append(parts, kv[0]+" = "+kv[1])
	}
	return tag + "(" + strings.Join(parts, ", ") + ")"
}

// RenderAnnotation returns the attribute text without surrounding brackets
func RenderAnnotation(a Annotation) string {
	var args arguments

	switch a := a.(type) {
	case ElementBinding:
		setOptional(&args, "ElementName", a.ElementName, quote)
		setOptional(&args, "Namespace", a.Namespace, quote)
		setOptional(&args, "DataType", a.DataType, quote)
		setOptional(&args, "Form", a.Form, formValue)
		setOptional(&args, "IsNullable", a.IsNullable, strconv.FormatBool)
		return args.render("XmlElement")
	case AttributeBinding:
		setOptional(&args, "AttributeName", a.AttributeName, quote)
		setOptional(&args, "Namespace", a.Namespace, quote)
		setOptional(&args, "Form", a.Form, formValue)
		setOptional(&args, "DataType", a.DataType, quote)
		return args.render("XmlAttribute")
	case TextBinding:
		setOptional(&args, "DataType", a.DataType, quote)
		return args.render("XmlText")
	case TypeBinding:
		args.set("AnonymousType", "true")
		args.set("Namespace", quote(a.Namespace))
		return args.render("XmlType")
	case RootBinding:
		args.set("Namespace", quote(a.Namespace))
		args.set("IsNullable", "false")
		return args.render("XmlRoot")
	case XMLIgnore:
		return args.render("XmlIgnore")
	case JSONIgnore:
		return args.render("JsonIgnore")
	case JSONPropertyName:
		args.add(quote(a.Name))
		return args.render("JsonPropertyName")
	case StringLengthConstraint:
		args.add(strconv.Itoa(a.Max))
		setOptional(&args, "MinimumLength", a.Min, strconv.Itoa)
		return args.render("StringLength")
	case PatternConstraint:
		args.add(verbatim(a.Pattern))
		return args.render("RegularExpression")
	}
	panic(fmt.Sprintf("codegen: unhandled annotation %T", a))
}

// quote renders a regular C# string literal
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// verbatim renders a C# verbatim string literal, in which only quotes need
// escaping
func verbatim(s string) string {
	return `@"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formValue(f Form) string {
	return "System.Xml.Schema.XmlSchemaForm." + string(f)
}
