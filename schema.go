package xsd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/agentflare-ai/go-xmldom"
)

// XSDNamespace is the XML Schema namespace
const XSDNamespace = "http://www.w3.org/2001/XMLSchema"

const xmlnsNamespace = "http://www.w3.org/2000/xmlns/"

// Unbounded is the MaxOcc value of maxOccurs="unbounded"
const Unbounded = -1

// Schema represents a compiled XSD schema. A schema produced by
// SchemaLoader holds the merged components of every loaded document.
type Schema struct {
	mu                     sync.RWMutex
	TargetNamespace        string
	ElementFormQualified   bool
	AttributeFormQualified bool
	ElementDecls           map[QName]*ElementDecl
	AttributeDecls         map[QName]*AttributeDecl
	TypeDefs               map[QName]Type
	AttributeGroups        map[QName]*AttributeGroup
	Groups                 map[QName]*ModelGroup
	Imports                []*Import
	Includes               []string
	ImportedSchemas        map[string]*Schema // Map of imported schemas by location
	elementOrder           []QName
}

// QName represents a qualified XML name
type QName struct {
	Namespace string
	Local     string
}

// String returns the string representation of a QName
func (q QName) String() string {
	if q.Namespace == "" {
		return q.Local
	}
	return fmt.Sprintf("{%s}%s", q.Namespace, q.Local)
}

// IsZero reports whether the name is empty
func (q QName) IsZero() bool {
	return q.Local == ""
}

// ElementDecl represents an element declaration
type ElementDecl struct {
	Name              QName
	Type              Type  // inline type, or the resolved named type
	TypeName          QName // value of the type attribute
	MinOcc            int
	MaxOcc            int // Unbounded for maxOccurs="unbounded"
	Nillable          bool
	Abstract          bool
	Global            bool
	SubstitutionGroup QName
	Default           string
	Fixed             string
	Documentation     string
}

// Type is the interface for all XSD types
type Type interface {
	Name() QName
	Doc() string
}

// SimpleType represents an XSD simple type
type SimpleType struct {
	QName         QName
	Restriction   *Restriction
	List          *List
	Union         *Union
	Documentation string
	builtin       *BuiltinType
}

// ComplexType represents an XSD complex type
type ComplexType struct {
	QName          QName
	Content        Content
	Attributes     []*AttributeDecl
	AttributeGroup []QName
	AnyAttribute   *AnyAttribute
	Mixed          bool
	Abstract       bool
	Documentation  string
}

// Content represents the content model of a complex type: a *ModelGroup,
// *GroupRef, *SimpleContent or *ComplexContent.
type Content interface {
	contentKind() string
}

// SimpleContent represents simple content in a complex type
type SimpleContent struct {
	Extension   *Extension
	Restriction *Restriction
}

// ComplexContent represents complex content
type ComplexContent struct {
	Mixed       bool
	Extension   *Extension
	Restriction *Restriction
}

// ModelGroup represents a group of elements
type ModelGroup struct {
	Kind      ModelGroupKind // sequence, choice, all
	Particles []Particle
	MinOcc    int
	MaxOcc    int
}

// ModelGroupKind represents the kind of model group
type ModelGroupKind string

const (
	SequenceGroup ModelGroupKind = "sequence"
	ChoiceGroup   ModelGroupKind = "choice"
	AllGroup      ModelGroupKind = "all"
)

// Particle represents a particle in a content model
type Particle interface {
	MinOccurs() int
	MaxOccurs() int
	ParticleKind() string
}

// ElementRef represents a reference to a global element
type ElementRef struct {
	Ref    QName
	MinOcc int
	MaxOcc int
}

// GroupRef represents a reference to a named model group
type GroupRef struct {
	Ref    QName
	MinOcc int
	MaxOcc int
}

// AnyElement represents xs:any wildcard
type AnyElement struct {
	Namespace       string
	ProcessContents string
	MinOcc          int
	MaxOcc          int
}

// AttributeDecl represents an attribute declaration or reference
type AttributeDecl struct {
	Name          QName
	Ref           QName
	Type          Type
	TypeName      QName
	Use           AttributeUse
	Default       string
	Fixed         string
	Documentation string
}

// AttributeUse represents attribute use
type AttributeUse string

const (
	OptionalUse   AttributeUse = "optional"
	RequiredUse   AttributeUse = "required"
	ProhibitedUse AttributeUse = "prohibited"
)

// AttributeGroup represents a group of attributes
type AttributeGroup struct {
	Name       QName
	Attributes []*AttributeDecl
	Groups     []QName
}

// Restriction represents a restriction on a type. Content and the attribute
// fields are only set for complex type restrictions.
type Restriction struct {
	Base           QName
	BaseInline     *SimpleType
	Facets         []Facet
	Content        Content
	Attributes     []*AttributeDecl
	AttributeGroup []QName
}

// List represents a list type
type List struct {
	ItemType QName
}

// Union represents a union type
type Union struct {
	MemberTypes []QName
}

// Extension represents type extension
type Extension struct {
	Base           QName
	Attributes     []*AttributeDecl
	AttributeGroup []QName
	Content        Content
	AnyAttribute   *AnyAttribute
}

// AnyAttribute represents xs:anyAttribute
type AnyAttribute struct {
	Namespace       string
	ProcessContents string
}

// Import represents an xs:import
type Import struct {
	Namespace      string
	SchemaLocation string
}

func newSchema() *Schema {
	return &Schema{
		ElementDecls:    make(map[QName]*ElementDecl),
		AttributeDecls:  make(map[QName]*AttributeDecl),
		TypeDefs:        make(map[QName]Type),
		AttributeGroups: make(map[QName]*AttributeGroup),
		Groups:          make(map[QName]*ModelGroup),
		ImportedSchemas: make(map[string]*Schema),
	}
}

// LoadSchema loads and parses a single XSD document from a file
func LoadSchema(filename string) (*Schema, error) {
	doc, err := decodeFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(doc)
}

func decodeFile(filename string) (xmldom.Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	doc, err := xmldom.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML file: %w", err)
	}
	return doc, nil
}

// Parse parses an XSD schema from an XML document
func Parse(doc xmldom.Document) (*Schema, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil document")
	}

	root := doc.DocumentElement()
	if root == nil {
		return nil, fmt.Errorf("no root element")
	}

	if string(root.NamespaceURI()) != XSDNamespace || string(root.LocalName()) != "schema" {
		return nil, fmt.Errorf("not an XSD schema document")
	}

	schema := newSchema()
	schema.TargetNamespace = string(root.GetAttribute("targetNamespace"))
	schema.ElementFormQualified = string(root.GetAttribute("elementFormDefault")) == "qualified"
	schema.AttributeFormQualified = string(root.GetAttribute("attributeFormDefault")) == "qualified"

	for _, child := range xsdChildren(root) {
		switch string(child.LocalName()) {
		case "element":
			if decl := schema.parseElement(child, true); decl != nil {
				schema.ElementDecls[decl.Name] = decl
				schema.elementOrder = append(schema.elementOrder, decl.Name)
			}
		case "attribute":
			if attr := schema.parseAttribute(child, true); attr != nil {
				schema.AttributeDecls[attr.Name] = attr
			}
		case "simpleType":
			if st := schema.parseSimpleType(child); st != nil && st.QName.Local != "" {
				schema.TypeDefs[st.QName] = st
			}
		case "complexType":
			if ct := schema.parseComplexType(child); ct != nil && ct.QName.Local != "" {
				schema.TypeDefs[ct.QName] = ct
			}
		case "attributeGroup":
			schema.parseAttributeGroup(child)
		case "group":
			schema.parseGroup(child)
		case "import":
			schema.Imports = append(schema.Imports, &Import{
				Namespace:      string(child.GetAttribute("namespace")),
				SchemaLocation: string(child.GetAttribute("schemaLocation")),
			})
		case "include":
			if location := string(child.GetAttribute("schemaLocation")); location != "" {
				schema.Includes = append(schema.Includes, location)
			}
		}
	}

	return schema, nil
}

// xsdChildren returns the child elements in the XML Schema namespace
func xsdChildren(elem xmldom.Element) []xmldom.Element {
	var out []xmldom.Element
	children := elem.Children()
	for i := uint(0); i < children.Length(); i++ {
		child := children.Item(i)
		if child == nil || string(child.NamespaceURI()) != XSDNamespace {
			continue
		}
		out = append(out, child)
	}
	return out
}

// parseDocumentation collects the text of the xs:documentation children of an
// xs:annotation element
func parseDocumentation(annotation xmldom.Element) string {
	var parts []string
	for _, child := range xsdChildren(annotation) {
		if string(child.LocalName()) != "documentation" {
			continue
		}
		if text := strings.TrimSpace(string(child.TextContent())); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

// parseElement parses an element declaration. Global declarations are always
// qualified with the target namespace; local ones follow form and
// elementFormDefault.
func (s *Schema) parseElement(elem xmldom.Element, global bool) *ElementDecl {
	name := string(elem.GetAttribute("name"))
	if name == "" {
		return nil
	}

	decl := &ElementDecl{
		Name:   QName{Local: name},
		MinOcc: 1,
		MaxOcc: 1,
		Global: global,
	}
	if global || s.qualified(string(elem.GetAttribute("form")), s.ElementFormQualified) {
		decl.Name.Namespace = s.TargetNamespace
	}
	if !global {
		decl.MinOcc = parseOccurs(elem, "minOccurs", 1)
		decl.MaxOcc = parseOccurs(elem, "maxOccurs", 1)
	}

	decl.Nillable = string(elem.GetAttribute("nillable")) == "true"
	decl.Abstract = string(elem.GetAttribute("abstract")) == "true"
	if substGroup := string(elem.GetAttribute("substitutionGroup")); substGroup != "" {
		decl.SubstitutionGroup = s.parseQName(elem, substGroup)
	}
	decl.Default = string(elem.GetAttribute("default"))
	decl.Fixed = string(elem.GetAttribute("fixed"))

	if typeName := string(elem.GetAttribute("type")); typeName != "" {
		decl.TypeName = s.parseQName(elem, typeName)
	}

	for _, child := range xsdChildren(elem) {
		switch string(child.LocalName()) {
		case "annotation":
			decl.Documentation = parseDocumentation(child)
		case "simpleType":
			decl.Type = s.parseSimpleType(child)
		case "complexType":
			decl.Type = s.parseComplexType(child)
		}
	}

	return decl
}

func (s *Schema) qualified(form string, formDefault bool) bool {
	switch form {
	case "qualified":
		return true
	case "unqualified":
		return false
	}
	return formDefault
}

// parseSimpleType parses a named or anonymous simple type definition
func (s *Schema) parseSimpleType(elem xmldom.Element) *SimpleType {
	st := &SimpleType{}
	if name := string(elem.GetAttribute("name")); name != "" {
		st.QName = QName{Namespace: s.TargetNamespace, Local: name}
	}

	for _, child := range xsdChildren(elem) {
		switch string(child.LocalName()) {
		case "annotation":
			st.Documentation = parseDocumentation(child)
		case "restriction":
			st.Restriction = s.parseRestriction(child)
		case "list":
			st.List = s.parseList(child)
		case "union":
			st.Union = s.parseUnion(child)
		}
	}

	return st
}

// parseComplexType parses a named or anonymous complex type definition
func (s *Schema) parseComplexType(elem xmldom.Element) *ComplexType {
	ct := &ComplexType{
		Mixed:    string(elem.GetAttribute("mixed")) == "true",
		Abstract: string(elem.GetAttribute("abstract")) == "true",
	}
	if name := string(elem.GetAttribute("name")); name != "" {
		ct.QName = QName{Namespace: s.TargetNamespace, Local: name}
	}

	for _, child := range xsdChildren(elem) {
		switch string(child.LocalName()) {
		case "annotation":
			ct.Documentation = parseDocumentation(child)
		case "simpleContent":
			ct.Content = s.parseSimpleContent(child)
		case "complexContent":
			ct.Content = s.parseComplexContent(child)
		case "sequence", "choice", "all":
			ct.Content = s.parseModelGroup(child)
		case "group":
			if ref := string(child.GetAttribute("ref")); ref != "" {
				ct.Content = &GroupRef{
					Ref:    s.parseQName(child, ref),
					MinOcc: parseOccurs(child, "minOccurs", 1),
					MaxOcc: parseOccurs(child, "maxOccurs", 1),
				}
			}
		case "attribute":
			if attr := s.parseAttribute(child, false); attr != nil {
				ct.Attributes = append(ct.Attributes, attr)
			}
		case "attributeGroup":
			if ref := string(child.GetAttribute("ref")); ref != "" {
				ct.AttributeGroup = append(ct.AttributeGroup, s.parseQName(child, ref))
			}
		case "anyAttribute":
			ct.AnyAttribute = parseAnyAttribute(child)
		}
	}

	return ct
}

func (s *Schema) parseRestriction(elem xmldom.Element) *Restriction {
	r := &Restriction{}
	if base := string(elem.GetAttribute("base")); base != "" {
		r.Base = s.parseQName(elem, base)
	}

	for _, child := range xsdChildren(elem) {
		facetName := string(child.LocalName())

		switch facetName {
		case "simpleType":
			if r.Base.IsZero() {
				r.BaseInline = s.parseSimpleType(child)
			}
			continue
		case "sequence", "choice", "all":
			r.Content = s.parseModelGroup(child)
			continue
		case "group":
			if ref := string(child.GetAttribute("ref")); ref != "" {
				r.Content = &GroupRef{
					Ref:    s.parseQName(child, ref),
					MinOcc: parseOccurs(child, "minOccurs", 1),
					MaxOcc: parseOccurs(child, "maxOccurs", 1),
				}
			}
			continue
		case "attribute":
			if attr := s.parseAttribute(child, false); attr != nil {
				r.Attributes = append(r.Attributes, attr)
			}
			continue
		case "attributeGroup":
			if ref := string(child.GetAttribute("ref")); ref != "" {
				r.AttributeGroup = append(r.AttributeGroup, s.parseQName(child, ref))
			}
			continue
		}

		value := string(child.GetAttribute("value"))
		facet := ParseFacet(facetName, value)
		if facet == nil {
			continue
		}
		// Consecutive enumeration values form a single facet
		if enum, ok := facet.(*EnumerationFacet); ok {
			var merged bool
			for _, existing := range r.Facets {
				if prev, ok := existing.(*EnumerationFacet); ok {
					prev.Values = append(prev.Values, enum.Values...)
					merged = true
					break
				}
			}
			if merged {
				continue
			}
		}
		r.Facets = append(r.Facets, facet)
	}

	return r
}

func (s *Schema) parseList(elem xmldom.Element) *List {
	list := &List{}
	if itemType := string(elem.GetAttribute("itemType")); itemType != "" {
		list.ItemType = s.parseQName(elem, itemType)
	}
	return list
}

func (s *Schema) parseUnion(elem xmldom.Element) *Union {
	u := &Union{}
	for _, t := range strings.Fields(string(elem.GetAttribute("memberTypes"))) {
		u.MemberTypes = append(u.MemberTypes, s.parseQName(elem, t))
	}
	return u
}

func (s *Schema) parseSimpleContent(elem xmldom.Element) *SimpleContent {
	sc := &SimpleContent{}
	for _, child := range xsdChildren(elem) {
		switch string(child.LocalName()) {
		case "extension":
			sc.Extension = s.parseExtension(child)
		case "restriction":
			sc.Restriction = s.parseRestriction(child)
		}
	}
	return sc
}

func (s *Schema) parseComplexContent(elem xmldom.Element) *ComplexContent {
	cc := &ComplexContent{
		Mixed: string(elem.GetAttribute("mixed")) == "true",
	}
	for _, child := range xsdChildren(elem) {
		switch string(child.LocalName()) {
		case "extension":
			cc.Extension = s.parseExtension(child)
		case "restriction":
			cc.Restriction = s.parseRestriction(child)
		}
	}
	return cc
}

func (s *Schema) parseExtension(elem xmldom.Element) *Extension {
	ext := &Extension{
		Base: s.parseQName(elem, string(elem.GetAttribute("base"))),
	}

	for _, child := range xsdChildren(elem) {
		switch string(child.LocalName()) {
		case "attribute":
			if attr := s.parseAttribute(child, false); attr != nil {
				ext.Attributes = append(ext.Attributes, attr)
			}
		case "attributeGroup":
			if ref := string(child.GetAttribute("ref")); ref != "" {
				ext.AttributeGroup = append(ext.AttributeGroup, s.parseQName(child, ref))
			}
		case "sequence", "choice", "all":
			ext.Content = s.parseModelGroup(child)
		case "group":
			if ref := string(child.GetAttribute("ref")); ref != "" {
				ext.Content = &GroupRef{
					Ref:    s.parseQName(child, ref),
					MinOcc: parseOccurs(child, "minOccurs", 1),
					MaxOcc: parseOccurs(child, "maxOccurs", 1),
				}
			}
		case "anyAttribute":
			ext.AnyAttribute = parseAnyAttribute(child)
		}
	}

	return ext
}

func (s *Schema) parseModelGroup(elem xmldom.Element) *ModelGroup {
	mg := &ModelGroup{
		Kind:   ModelGroupKind(elem.LocalName()),
		MinOcc: parseOccurs(elem, "minOccurs", 1),
		MaxOcc: parseOccurs(elem, "maxOccurs", 1),
	}

	for _, child := range xsdChildren(elem) {
		switch string(child.LocalName()) {
		case "element":
			if ref := string(child.GetAttribute("ref")); ref != "" {
				mg.Particles = append(mg.Particles, &ElementRef{
					Ref:    s.parseQName(child, ref),
					MinOcc: parseOccurs(child, "minOccurs", 1),
					MaxOcc: parseOccurs(child, "maxOccurs", 1),
				})
			} else if decl := s.parseElement(child, false); decl != nil {
				mg.Particles = append(mg.Particles, decl)
			}
		case "group":
			if ref := string(child.GetAttribute("ref")); ref != "" {
				mg.Particles = append(mg.Particles, &GroupRef{
					Ref:    s.parseQName(child, ref),
					MinOcc: parseOccurs(child, "minOccurs", 1),
					MaxOcc: parseOccurs(child, "maxOccurs", 1),
				})
			}
		case "choice", "sequence", "all":
			mg.Particles = append(mg.Particles, s.parseModelGroup(child))
		case "any":
			mg.Particles = append(mg.Particles, &AnyElement{
				Namespace:       string(child.GetAttribute("namespace")),
				ProcessContents: string(child.GetAttribute("processContents")),
				MinOcc:          parseOccurs(child, "minOccurs", 1),
				MaxOcc:          parseOccurs(child, "maxOccurs", 1),
			})
		}
	}

	return mg
}

// parseOccurs parses minOccurs/maxOccurs attributes
func parseOccurs(elem xmldom.Element, attr string, defaultValue int) int {
	value := string(elem.GetAttribute(xmldom.DOMString(attr)))
	if value == "" {
		return defaultValue
	}
	if value == "unbounded" {
		return Unbounded
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	return defaultValue
}

func (s *Schema) parseAttribute(elem xmldom.Element, global bool) *AttributeDecl {
	attr := &AttributeDecl{
		Use:     OptionalUse,
		Default: string(elem.GetAttribute("default")),
		Fixed:   string(elem.GetAttribute("fixed")),
	}

	if ref := string(elem.GetAttribute("ref")); ref != "" {
		attr.Ref = s.parseQName(elem, ref)
	} else {
		name := string(elem.GetAttribute("name"))
		if name == "" {
			return nil
		}
		attr.Name = QName{Local: name}
		if global || s.qualified(string(elem.GetAttribute("form")), s.AttributeFormQualified) {
			attr.Name.Namespace = s.TargetNamespace
		}
	}

	if use := string(elem.GetAttribute("use")); use != "" {
		attr.Use = AttributeUse(use)
	}
	if typeName := string(elem.GetAttribute("type")); typeName != "" {
		attr.TypeName = s.parseQName(elem, typeName)
	}

	for _, child := range xsdChildren(elem) {
		switch string(child.LocalName()) {
		case "annotation":
			attr.Documentation = parseDocumentation(child)
		case "simpleType":
			attr.Type = s.parseSimpleType(child)
		}
	}

	return attr
}

func parseAnyAttribute(elem xmldom.Element) *AnyAttribute {
	return &AnyAttribute{
		Namespace:       string(elem.GetAttribute("namespace")),
		ProcessContents: string(elem.GetAttribute("processContents")),
	}
}

func (s *Schema) parseAttributeGroup(elem xmldom.Element) {
	name := string(elem.GetAttribute("name"))
	if name == "" {
		return
	}

	ag := &AttributeGroup{
		Name: QName{Namespace: s.TargetNamespace, Local: name},
	}
	for _, child := range xsdChildren(elem) {
		switch string(child.LocalName()) {
		case "attribute":
			if attr := s.parseAttribute(child, false); attr != nil {
				ag.Attributes = append(ag.Attributes, attr)
			}
		case "attributeGroup":
			if ref := string(child.GetAttribute("ref")); ref != "" {
				ag.Groups = append(ag.Groups, s.parseQName(child, ref))
			}
		}
	}

	s.AttributeGroups[ag.Name] = ag
}

func (s *Schema) parseGroup(elem xmldom.Element) {
	name := string(elem.GetAttribute("name"))
	if name == "" {
		return
	}

	for _, child := range xsdChildren(elem) {
		switch string(child.LocalName()) {
		case "sequence", "choice", "all":
			s.Groups[QName{Namespace: s.TargetNamespace, Local: name}] = s.parseModelGroup(child)
			return
		}
	}
}

// parseQName resolves a prefixed name against the namespace declarations in
// scope at elem. Unprefixed names use the default namespace, falling back to
// the target namespace.
func (s *Schema) parseQName(elem xmldom.Element, name string) QName {
	if name == "" {
		return QName{}
	}

	prefix, local, found := strings.Cut(name, ":")
	if !found {
		prefix, local = "", name
	}
	if ns, ok := lookupNamespace(elem, prefix); ok {
		return QName{Namespace: ns, Local: local}
	}
	if prefix == "xs" || prefix == "xsd" {
		return QName{Namespace: XSDNamespace, Local: local}
	}
	// Undeclared prefix or no default namespace: assume the target namespace
	return QName{Namespace: s.TargetNamespace, Local: local}
}

// lookupNamespace finds the namespace bound to prefix on elem or its
// ancestors. The decoder stores xmlns:p declarations with namespace "xmlns"
// and node name p, while documents built through the DOM use the qualified
// name xmlns:p.
func lookupNamespace(elem xmldom.Element, prefix string) (string, bool) {
	for node := xmldom.Node(elem); node != nil; node = node.ParentNode() {
		e, ok := node.(xmldom.Element)
		if !ok {
			break
		}
		attrs := e.Attributes()
		if attrs == nil {
			continue
		}
		for i := uint(0); i < attrs.Length(); i++ {
			attr := attrs.Item(i)
			if attr != nil && declaresPrefix(attr, prefix) {
				return string(attr.NodeValue()), true
			}
		}
	}

	if prefix != "" && elem != nil {
		if ns := string(elem.LookupNamespaceURI(xmldom.DOMString(prefix))); ns != "" {
			return ns, true
		}
	}
	return "", false
}

func declaresPrefix(attr xmldom.Node, prefix string) bool {
	name := string(attr.NodeName())
	switch ns := string(attr.NamespaceURI()); {
	case ns == "xmlns" || ns == xmlnsNamespace:
		if prefix == "" {
			return name == "xmlns"
		}
		return string(attr.LocalName()) == prefix
	case prefix == "":
		return name == "xmlns"
	default:
		return name == "xmlns:"+prefix
	}
}

// Type interface implementations

func (st *SimpleType) Name() QName { return st.QName }
func (st *SimpleType) Doc() string { return st.Documentation }

// Builtin returns the built-in type this simple type stands for, or nil for
// user-defined types.
func (st *SimpleType) Builtin() *BuiltinType { return st.builtin }

func (ct *ComplexType) Name() QName { return ct.QName }
func (ct *ComplexType) Doc() string { return ct.Documentation }

// Content interface implementations

func (sc *SimpleContent) contentKind() string  { return "simpleContent" }
func (cc *ComplexContent) contentKind() string { return "complexContent" }
func (mg *ModelGroup) contentKind() string     { return string(mg.Kind) }
func (gr *GroupRef) contentKind() string       { return "group" }

// Particle interface implementations

func (ed *ElementDecl) MinOccurs() int       { return ed.MinOcc }
func (ed *ElementDecl) MaxOccurs() int       { return ed.MaxOcc }
func (ed *ElementDecl) ParticleKind() string { return "element" }

func (er *ElementRef) MinOccurs() int       { return er.MinOcc }
func (er *ElementRef) MaxOccurs() int       { return er.MaxOcc }
func (er *ElementRef) ParticleKind() string { return "element" }

func (gr *GroupRef) MinOccurs() int       { return gr.MinOcc }
func (gr *GroupRef) MaxOccurs() int       { return gr.MaxOcc }
func (gr *GroupRef) ParticleKind() string { return "group" }

func (ae *AnyElement) MinOccurs() int       { return ae.MinOcc }
func (ae *AnyElement) MaxOccurs() int       { return ae.MaxOcc }
func (ae *AnyElement) ParticleKind() string { return "any" }

func (mg *ModelGroup) MinOccurs() int       { return mg.MinOcc }
func (mg *ModelGroup) MaxOccurs() int       { return mg.MaxOcc }
func (mg *ModelGroup) ParticleKind() string { return string(mg.Kind) }
