package xsd

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/agentflare-ai/go-xmldom"
)

// LintIssue is a structural problem found in a schema document
type LintIssue struct {
	// Component identifies the offending declaration, e.g. <element name='Id'>
	Component string
	Message   string
}

func (i LintIssue) String() string {
	return i.Component + ": " + i.Message
}

// SchemaLinter checks that a schema document follows the structural rules
// the generator depends on. Problems are reported, never fixed.
type SchemaLinter struct {
	issues []LintIssue
	ids    map[string]bool
}

// NewSchemaLinter creates a new schema linter
func NewSchemaLinter() *SchemaLinter {
	return &SchemaLinter{ids: make(map[string]bool)}
}

// Lint checks a schema document and returns its issues in document order
func (sl *SchemaLinter) Lint(doc xmldom.Document) []LintIssue {
	sl.issues = nil
	sl.ids = make(map[string]bool)

	if doc == nil {
		return []LintIssue{{Component: "document", Message: "nil document"}}
	}
	root := doc.DocumentElement()
	if root == nil {
		return []LintIssue{{Component: "document", Message: "no root element"}}
	}
	if string(root.NamespaceURI()) != XSDNamespace || string(root.LocalName()) != "schema" {
		sl.addIssue(root, "document root must be xs:schema element")
		return sl.issues
	}

	sl.lintElement(root, true)
	return sl.issues
}

// LintSchemaFile decodes and lints one schema file
func LintSchemaFile(filename string) ([]LintIssue, error) {
	doc, err := decodeFile(filename)
	if err != nil {
		return nil, err
	}
	return NewSchemaLinter().Lint(doc), nil
}

func (sl *SchemaLinter) lintElement(elem xmldom.Element, top bool) {
	sl.lintID(elem)

	switch string(elem.LocalName()) {
	case "simpleType":
		sl.lintNamed(elem, top)
		sl.lintSimpleType(elem)
	case "complexType":
		sl.lintNamed(elem, top)
		sl.lintBoolean(elem, "mixed")
		sl.lintBoolean(elem, "abstract")
	case "element":
		sl.lintElementDecl(elem, top)
	case "attribute":
		sl.lintAttributeDecl(elem)
	case "sequence", "choice", "all", "any", "group":
		sl.lintOccurrences(elem)
	case "simpleContent", "complexContent":
		sl.lintDerivation(elem)
	}

	for _, child := range xsdChildren(elem) {
		switch string(child.LocalName()) {
		case "annotation", "documentation", "appinfo":
			continue
		}
		sl.lintElement(child, string(elem.LocalName()) == "schema")
	}
}

func (sl *SchemaLinter) lintID(elem xmldom.Element) {
	if !elem.HasAttribute("id") {
		return
	}
	id := string(elem.GetAttribute("id"))
	switch {
	case !isValidNCName(id):
		sl.addIssue(elem, fmt.Sprintf("invalid id value '%s': must be a valid NCName", id))
	case sl.ids[id]:
		sl.addIssue(elem, fmt.Sprintf("duplicate id value '%s'", id))
	default:
		sl.ids[id] = true
	}
}

// lintNamed checks that top-level type definitions are named and local ones
// are anonymous
func (sl *SchemaLinter) lintNamed(elem xmldom.Element, top bool) {
	name := string(elem.GetAttribute("name"))
	kind := string(elem.LocalName())
	switch {
	case top && name == "":
		sl.addIssue(elem, fmt.Sprintf("global %s must have a name attribute", kind))
	case top && !isValidNCName(name):
		sl.addIssue(elem, fmt.Sprintf("invalid %s name '%s': must be a valid NCName", kind, name))
	case !top && name != "":
		sl.addIssue(elem, fmt.Sprintf("local %s must not have a name attribute", kind))
	}
}

func (sl *SchemaLinter) lintSimpleType(elem xmldom.Element) {
	count := 0
	for _, child := range xsdChildren(elem) {
		switch string(child.LocalName()) {
		case "restriction", "list", "union":
			count++
		}
	}
	switch {
	case count == 0:
		sl.addIssue(elem, "simpleType must have exactly one of: restriction, list, or union")
	case count > 1:
		sl.addIssue(elem, "simpleType cannot have more than one of: restriction, list, or union")
	}
}

func (sl *SchemaLinter) lintElementDecl(elem xmldom.Element, top bool) {
	name := string(elem.GetAttribute("name"))
	ref := string(elem.GetAttribute("ref"))

	switch {
	case name != "" && ref != "":
		sl.addIssue(elem, "element cannot have both 'name' and 'ref' attributes")
	case name == "" && ref == "":
		sl.addIssue(elem, "element must have a name or ref attribute")
	case top && ref != "":
		sl.addIssue(elem, "global element cannot be a reference")
	case name != "" && !isValidNCName(name):
		sl.addIssue(elem, fmt.Sprintf("invalid element name '%s': must be a valid NCName", name))
	}

	if top && (elem.HasAttribute("minOccurs") || elem.HasAttribute("maxOccurs")) {
		sl.addIssue(elem, "global element cannot have occurrence bounds")
	} else {
		sl.lintOccurrences(elem)
	}

	if elem.GetAttribute("type") != "" {
		for _, child := range xsdChildren(elem) {
			if local := string(child.LocalName()); local == "simpleType" || local == "complexType" {
				sl.addIssue(elem, "element cannot have both 'type' attribute and inline type definition")
				break
			}
		}
	}
	sl.lintDefaultFixed(elem)
}

func (sl *SchemaLinter) lintAttributeDecl(elem xmldom.Element) {
	name := string(elem.GetAttribute("name"))
	ref := string(elem.GetAttribute("ref"))

	switch {
	case name != "" && ref != "":
		sl.addIssue(elem, "attribute cannot have both 'name' and 'ref' attributes")
	case name != "" && !isValidNCName(name):
		sl.addIssue(elem, fmt.Sprintf("invalid attribute name '%s': must be a valid NCName", name))
	}

	switch use := string(elem.GetAttribute("use")); use {
	case "", "optional", "required", "prohibited":
	default:
		sl.addIssue(elem, fmt.Sprintf("invalid use value '%s': must be 'optional', 'required', or 'prohibited'", use))
	}
	sl.lintDefaultFixed(elem)
}

func (sl *SchemaLinter) lintDefaultFixed(elem xmldom.Element) {
	if elem.HasAttribute("default") && elem.HasAttribute("fixed") {
		sl.addIssue(elem, fmt.Sprintf("%s cannot have both 'default' and 'fixed' attributes", elem.LocalName()))
	}
}

func (sl *SchemaLinter) lintBoolean(elem xmldom.Element, attr string) {
	switch v := string(elem.GetAttribute(xmldom.DOMString(attr))); v {
	case "", "true", "false", "1", "0":
	default:
		sl.addIssue(elem, fmt.Sprintf("invalid %s value '%s': must be 'true' or 'false'", attr, v))
	}
}

// lintOccurrences checks minOccurs and maxOccurs
func (sl *SchemaLinter) lintOccurrences(elem xmldom.Element) {
	minVal, maxVal := 1, 1

	if s := string(elem.GetAttribute("minOccurs")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			sl.addIssue(elem, fmt.Sprintf("invalid minOccurs value '%s': must be non-negative integer", s))
			return
		}
		minVal = n
	}

	s := string(elem.GetAttribute("maxOccurs"))
	if s == "" || s == "unbounded" {
		return
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		sl.addIssue(elem, fmt.Sprintf("invalid maxOccurs value '%s': must be non-negative integer or 'unbounded'", s))
		return
	}
	maxVal = n
	if minVal > maxVal {
		sl.addIssue(elem, fmt.Sprintf("minOccurs (%d) cannot be greater than maxOccurs (%d)", minVal, maxVal))
	}
}

func (sl *SchemaLinter) lintDerivation(elem xmldom.Element) {
	var restriction, extension bool
	for _, child := range xsdChildren(elem) {
		switch string(child.LocalName()) {
		case "restriction":
			restriction = true
		case "extension":
			extension = true
		}
	}
	switch {
	case !restriction && !extension:
		sl.addIssue(elem, fmt.Sprintf("%s must have either restriction or extension child", elem.LocalName()))
	case restriction && extension:
		sl.addIssue(elem, fmt.Sprintf("%s cannot have both restriction and extension children", elem.LocalName()))
	}
}

// addIssue records an issue with the name or ref of the offending element
func (sl *SchemaLinter) addIssue(elem xmldom.Element, msg string) {
	name := elem.GetAttribute("name")
	if name == "" {
		name = elem.GetAttribute("ref")
	}

	component := fmt.Sprintf("<%s", elem.LocalName())
	if name != "" {
		component += fmt.Sprintf(" name='%s'", name)
	}
	component += ">"

	sl.issues = append(sl.issues, LintIssue{Component: component, Message: msg})
}

var ncNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9._\-]*$`)

// isValidNCName checks if a string is a valid NCName (non-colonized name)
func isValidNCName(s string) bool {
	return ncNamePattern.MatchString(s)
}
