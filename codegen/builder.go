package codegen

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	xsd "github.com/agentflare-ai/go-xsdgen"
)

// choiceRemark is attached to every property generated from a choice
// branch. Branches are not modelled as alternatives, so nothing enforces
// that only one of them is set.
const choiceRemark = "Ambiguous cardinality: choice branch, at most one branch is present in an instance."

// Builder translates top-level schema elements into class models. Class
// models are memoized by element name for the lifetime of the builder, so
// every element maps to exactly one model across all generated roots.
type Builder struct {
	schema  *xsd.Schema
	classes map[xsd.QName]*ClassModel
	logger  *slog.Logger
}

// NewBuilder creates a builder over a compiled schema
func NewBuilder(schema *xsd.Schema, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		schema:  schema,
		classes: make(map[xsd.QName]*ClassModel),
		logger:  logger,
	}
}

// ElementNames returns the local names of every top-level element, the
// default set of roots.
func (b *Builder) ElementNames() []string {
	return b.schema.ElementNames()
}

// Generate builds the class model of the top-level element with the given
// local name.
func (b *Builder) Generate(root string) (*ClassModel, error) {
	decl := b.schema.LookupElement(root)
	if decl == nil {
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
	}

	ct, ok := b.schema.ElementType(decl).(*xsd.ComplexType)
	if !ok {
		return nil, fmt.Errorf("%w: root element %s does not have a complex type", ErrUnsupportedContent, root)
	}
	return b.classModel(decl, ct)
}

func (b *Builder) classModel(decl *xsd.ElementDecl, ct *xsd.ComplexType) (*ClassModel, error) {
	if cm, ok := b.classes[decl.Name]; ok {
		return cm, nil
	}

	cm := &ClassModel{
		Name:    decl.Name,
		Summary: b.summary(decl, ct),
		IsRoot:  b.schema.IsGlobal(decl.Name),
	}
	// Registered before the properties so that recursive content resolves
	// to this model
	b.classes[decl.Name] = cm

	props, err := b.properties(cm, ct)
	if err != nil {
		delete(b.classes, decl.Name)
		return nil, fmt.Errorf("element %s: %w", decl.Name.Local, err)
	}
	cm.Properties = props

	b.logger.Debug("class model built",
		"class", decl.Name.Local,
		"namespace", decl.Name.Namespace,
		"properties", len(props))
	return cm, nil
}

func (b *Builder) properties(owner *ClassModel, ct *xsd.ComplexType) ([]*PropertyModel, error) {
	particle, err := b.schema.ContentParticle(ct)
	if err != nil {
		return nil, err
	}

	switch p := particle.(type) {
	case nil:
		if base := b.schema.SimpleContentBase(ct); base != nil {
			return b.simpleContentProperties(owner, ct, base)
		}
		if _, ok := ct.Content.(*xsd.SimpleContent); ok {
			return nil, fmt.Errorf("unresolved simple content base")
		}
		return nil, fmt.Errorf("%w: empty", ErrUnsupportedContent)
	case *xsd.ModelGroup:
		switch p.Kind {
		case xsd.SequenceGroup:
			return b.sequenceProperties(owner, p)
		case xsd.ChoiceGroup:
			return b.choiceProperties(owner, p)
		}
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedContent, p.Kind)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedContent, particle.ParticleKind())
}

// sequenceProperties maps each element of a sequence to a property. A
// sequence nested in the sequence is a repeated group: its elements take
// the occurrence bounds of the nested sequence.
func (b *Builder) sequenceProperties(owner *ClassModel, seq *xsd.ModelGroup) ([]*PropertyModel, error) {
	var props []*PropertyModel
	for _, item := range seq.Particles {
		resolved := b.schema.ResolveParticle(item)
		switch it := resolved.(type) {
		case *xsd.ElementDecl:
			prop, err := b.elementProperty(owner, it)
			if err != nil {
				return nil, err
			}
			props = append(props, prop)
		case *xsd.ModelGroup:
			if it.Kind != xsd.SequenceGroup {
				return nil, fmt.Errorf("%w: %s nested in a sequence", ErrUnsupportedParticle, it.Kind)
			}
			for _, nested := range it.Particles {
				decl, err := b.resolveElement(nested)
				if err != nil {
					return nil, fmt.Errorf("%w in a nested sequence", err)
				}
				prop, err := b.elementProperty(owner, decl)
				if err != nil {
					return nil, err
				}
				prop.MaxOccurs = it.MaxOcc
				prop.Required = it.MinOcc > 0
				props = append(props, prop)
			}
		case nil:
			return nil, fmt.Errorf("unresolved %s reference", item.ParticleKind())
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedParticle, it.ParticleKind())
		}
	}
	return props, nil
}

// choiceProperties maps every branch of a choice to an optional property
func (b *Builder) choiceProperties(owner *ClassModel, choice *xsd.ModelGroup) ([]*PropertyModel, error) {
	var props []*PropertyModel
	for _, item := range choice.Particles {
		decl, err := b.resolveElement(item)
		if err != nil {
			return nil, fmt.Errorf("%w in a choice", err)
		}
		prop, err := b.elementProperty(owner, decl)
		if err != nil {
			return nil, err
		}
		prop.Required = false
		if prop.Remarks != "" {
			prop.Remarks = choiceRemark + "\n" + prop.Remarks
		} else {
			prop.Remarks = choiceRemark
		}
		props = append(props, prop)
	}
	return props, nil
}

func (b *Builder) resolveElement(p xsd.Particle) (*xsd.ElementDecl, error) {
	switch resolved := b.schema.ResolveParticle(p).(type) {
	case *xsd.ElementDecl:
		return resolved, nil
	case nil:
		return nil, fmt.Errorf("unresolved %s reference", p.ParticleKind())
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedParticle, resolved.ParticleKind())
	}
}

// simpleContentProperties builds the Value property of a simple content
// type followed by one property per attribute. Attributes are always
// strings.
func (b *Builder) simpleContentProperties(owner *ClassModel, ct *xsd.ComplexType, base *xsd.SimpleType) ([]*PropertyModel, error) {
	facets := b.schema.Facets(base)
	code := NarrowTypeCode(b.schema.TypeCode(base), facets)
	scalar, err := ScalarType(code)
	if err != nil {
		return nil, fmt.Errorf("simple content: %w", err)
	}

	annotations := []Annotation{TextBinding{DataType: DataTypeTag(code)}}
	annotations = append(annotations, ValidationAnnotations(facets)...)
	annotations = append(annotations, JSONPropertyName{Name: camelCase("Value")})

	props := []*PropertyModel{{
		Name:        "Value",
		ScalarType:  scalar,
		Required:    true,
		MaxOccurs:   1,
		Remarks:     FacetRemarks(facets),
		Annotations: annotations,
	}}

	for _, attr := range b.schema.AttributeUses(ct) {
		binding := AttributeBinding{}
		if memberName(attr.Name.Local) != attr.Name.Local {
			binding.AttributeName = Some(attr.Name.Local)
		}
		if attr.Name.Namespace != "" {
			binding.Namespace = Some(attr.Name.Namespace)
			binding.Form = Some(FormQualified)
		} else {
			binding.Form = Some(FormUnqualified)
		}

		// The DataType must agree with the string property type
		attrType := b.schema.AttributeType(attr)
		attrCode := NarrowTypeCode(b.schema.TypeCode(attrType), b.schema.Facets(attrType))
		if s, err := ScalarType(attrCode); err == nil && s == "string" {
			binding.DataType = DataTypeTag(attrCode)
		}

		props = append(props, &PropertyModel{
			Name:        memberName(attr.Name.Local),
			ScalarType:  "string",
			Required:    attr.Use == xsd.RequiredUse,
			MaxOccurs:   1,
			Summary:     cleanDocumentation(attr.Documentation),
			Annotations: []Annotation{binding, JSONPropertyName{Name: camelCase(attr.Name.Local)}},
		})
	}
	return props, nil
}

// elementProperty derives the property of a child element. Complex types
// with simple content and no attributes collapse into a scalar property.
func (b *Builder) elementProperty(owner *ClassModel, decl *xsd.ElementDecl) (*PropertyModel, error) {
	elementType := b.schema.ElementType(decl)
	summary := b.summary(decl, elementType)

	switch t := elementType.(type) {
	case *xsd.ComplexType:
		if base := b.schema.SimpleContentBase(t); base != nil && len(b.schema.AttributeUses(t)) == 0 {
			return b.scalarProperty(owner, decl, base, summary)
		}

		cm, err := b.classModel(decl, t)
		if err != nil {
			return nil, err
		}
		return &PropertyModel{
			Name:      memberName(decl.Name.Local),
			ClassType: cm,
			Required:  decl.MinOcc > 0,
			MaxOccurs: decl.MaxOcc,
			Summary:   summary,
			Annotations: []Annotation{
				elementBinding(owner, decl, None[string]()),
				JSONPropertyName{Name: camelCase(decl.Name.Local)},
			},
		}, nil
	case *xsd.SimpleType:
		return b.scalarProperty(owner, decl, t, summary)
	}
	return nil, fmt.Errorf("element %s: unresolved type %s", decl.Name.Local, decl.TypeName)
}

func (b *Builder) scalarProperty(owner *ClassModel, decl *xsd.ElementDecl, st *xsd.SimpleType, summary string) (*PropertyModel, error) {
	facets := b.schema.Facets(st)
	code := NarrowTypeCode(b.schema.TypeCode(st), facets)
	scalar, err := ScalarType(code)
	if err != nil {
		return nil, fmt.Errorf("element %s: %w", decl.Name.Local, err)
	}

	annotations := []Annotation{elementBinding(owner, decl, DataTypeTag(code))}
	annotations = append(annotations, ValidationAnnotations(facets)...)
	annotations = append(annotations, JSONPropertyName{Name: camelCase(decl.Name.Local)})

	return &PropertyModel{
		Name:        memberName(decl.Name.Local),
		ScalarType:  scalar,
		Required:    decl.MinOcc > 0,
		MaxOccurs:   decl.MaxOcc,
		Summary:     summary,
		Remarks:     FacetRemarks(facets),
		Annotations: annotations,
	}, nil
}

// elementBinding binds a child element. The namespace is only spelled out
// when it differs from the namespace of the owning class, the element name
// only when it is not a valid C# identifier.
func elementBinding(owner *ClassModel, decl *xsd.ElementDecl, dataType Optional[string]) ElementBinding {
	name := decl.Name
	binding := ElementBinding{DataType: dataType}
	if memberName(name.Local) != name.Local {
		binding.ElementName = Some(name.Local)
	}
	if decl.Nillable {
		binding.IsNullable = Some(true)
	}
	if name.Namespace != owner.Name.Namespace {
		if name.Namespace == "" {
			binding.Form = Some(FormUnqualified)
		} else {
			binding.Namespace = Some(name.Namespace)
		}
	}
	return binding
}

// summary returns the documentation of an element, falling back to the
// top-level element of the same name and then to the element's type.
func (b *Builder) summary(decl *xsd.ElementDecl, t xsd.Type) string {
	doc := decl.Documentation
	if doc == "" {
		if global := b.schema.GlobalElement(decl.Name); global != nil {
			doc = global.Documentation
		}
	}
	if doc == "" && t != nil {
		doc = t.Doc()
	}
	return cleanDocumentation(doc)
}

// memberName turns an XML name into a C# identifier. Characters allowed in
// XML names but not in identifiers, such as '-' and '.', become '_'.
func memberName(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, name)
}

func camelCase(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToLower(r)) + name[size:]
}
