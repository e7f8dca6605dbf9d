package codegen

import (
	xsd "github.com/agentflare-ai/go-xsdgen"
)

// ClassModel describes one generated class. Two models with the same Name
// are the same logical type.
type ClassModel struct {
	Name       xsd.QName
	Summary    string
	Remarks    string
	Properties []*PropertyModel
	// IsRoot is set for classes of top-level elements, which get an XmlRoot
	// attribute.
	IsRoot bool
}

// PropertyModel describes one property of a generated class, in
// serialization order.
type PropertyModel struct {
	Name string
	// ScalarType is the C# type of scalar properties; empty when ClassType
	// is set.
	ScalarType string
	ClassType  *ClassModel
	Required   bool
	// MaxOccurs is xsd.Unbounded for unbounded properties
	MaxOccurs   int
	Annotations []Annotation
	Summary     string
	Remarks     string
}

// TypeName returns the C# element type of the property
func (p *PropertyModel) TypeName() string {
	if p.ClassType != nil {
		return p.ClassType.Name.Local
	}
	return p.ScalarType
}

// IsCollection reports whether the property holds more than one value
func (p *PropertyModel) IsCollection() bool {
	return p.MaxOccurs == xsd.Unbounded || p.MaxOccurs > 1
}

// FullType returns the declared C# type without nullability
func (p *PropertyModel) FullType() string {
	if p.IsCollection() {
		return "List<" + p.TypeName() + ">"
	}
	return p.TypeName()
}

// Walk calls fn for cm and every class reachable from it, each class once,
// depth first in property order.
func (cm *ClassModel) Walk(fn func(*ClassModel)) {
	seen := make(map[*ClassModel]bool)
	var visit func(*ClassModel)
	visit = func(c *ClassModel) {
		if seen[c] {
			return
		}
		seen[c] = true
		fn(c)
		for _, p := range c.Properties {
			if p.ClassType != nil {
				visit(p.ClassType)
			}
		}
	}
	visit(cm)
}
