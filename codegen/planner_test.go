package codegen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xsd "github.com/agentflare-ai/go-xsdgen"
)

// codeSchema declares a top-level Code element with simple content and an
// attribute, referenced from two different roots.
const codeSchema = `
<xs:simpleType name="CodeType">
  <xs:restriction base="xs:string">
    <xs:pattern value="[A-Z]{3}"/>
  </xs:restriction>
</xs:simpleType>
<xs:element name="Code">
  <xs:complexType>
    <xs:simpleContent>
      <xs:extension base="t:CodeType">
        <xs:attribute name="listId" type="xs:string"/>
      </xs:extension>
    </xs:simpleContent>
  </xs:complexType>
</xs:element>
<xs:element name="Order">
  <xs:complexType>
    <xs:sequence>
      <xs:element name="Number" type="xs:string"/>
      <xs:element ref="t:Code"/>
      <xs:element name="Line" maxOccurs="unbounded">
        <xs:complexType>
          <xs:sequence>
            <xs:element name="Quantity" type="xs:decimal"/>
          </xs:sequence>
        </xs:complexType>
      </xs:element>
    </xs:sequence>
  </xs:complexType>
</xs:element>
<xs:element name="Invoice">
  <xs:complexType>
    <xs:sequence>
      <xs:element ref="t:Code" minOccurs="0"/>
    </xs:sequence>
  </xs:complexType>
</xs:element>`

// class builds a class model by hand for planner tests
func class(name string, children ...*ClassModel) *ClassModel {
	cm := &ClassModel{Name: qname(name)}
	for _, child := range children {
		cm.Properties = append(cm.Properties, &PropertyModel{Name: child.Name.Local, ClassType: child, MaxOccurs: 1})
	}
	return cm
}

func unitNames(plan *Plan) [][]string {
	out := make([][]string, len(plan.Units))
	for i, u := range plan.Units {
		for _, cm := range u.Classes {
			out[i] = append(out[i], cm.Name.Local)
		}
	}
	return out
}

func TestCountReferences(t *testing.T) {
	d := class("D")
	c := class("C", d)
	a := class("A", c, c)
	b := class("B", c)

	counts := CountReferences([]*ClassModel{a, b})
	want := map[xsd.QName]int{
		qname("A"): 1,
		qname("B"): 1,
		qname("C"): 3,
		qname("D"): 1,
	}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("CountReferences() mismatch (-want +got):\n%s", diff)
	}
}

func TestCountReferencesOrderInvariant(t *testing.T) {
	shared := class("Shared", class("Leaf"))
	first := class("First", shared, class("Own"))
	second := class("Second", shared)

	forward := CountReferences([]*ClassModel{first, second})
	backward := CountReferences([]*ClassModel{second, first})
	if diff := cmp.Diff(forward, backward); diff != "" {
		t.Errorf("counts depend on root order (-forward +backward):\n%s", diff)
	}
}

func TestCountReferencesSelfReference(t *testing.T) {
	node := class("Node")
	node.Properties = append(node.Properties, &PropertyModel{Name: "Node", ClassType: node})

	counts := CountReferences([]*ClassModel{node})
	assert.Equal(t, 2, counts[qname("Node")])
}

func TestPlanOutputInlinesSingleUse(t *testing.T) {
	inner := class("Inner", class("Deepest"))
	outer := class("Outer", inner)

	roots := []*ClassModel{outer}
	plan := PlanOutput(roots, CountReferences(roots))

	assert.Equal(t, [][]string{{"Outer", "Inner", "Deepest"}}, unitNames(plan))
	assert.Equal(t, "Outer.cs", plan.Units[0].FileName())
}

func TestPlanOutputPromotesShared(t *testing.T) {
	shared := class("Shared", class("Part"))
	a := class("A", shared, class("OwnA"))
	b := class("B", shared)

	roots := []*ClassModel{a, b}
	plan := PlanOutput(roots, CountReferences(roots))

	want := [][]string{
		{"A", "OwnA"},
		{"Shared", "Part"},
		{"B"},
	}
	if diff := cmp.Diff(want, unitNames(plan)); diff != "" {
		t.Errorf("PlanOutput() mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanOutputEveryClassOnce(t *testing.T) {
	leaf := class("Leaf")
	shared := class("Shared", leaf)
	mid := class("Mid", shared, leaf)
	a := class("A", mid, shared)
	b := class("B", shared, leaf)

	roots := []*ClassModel{a, b}
	plan := PlanOutput(roots, CountReferences(roots))

	seen := make(map[xsd.QName]int)
	for _, u := range plan.Units {
		for _, cm := range u.Classes {
			seen[cm.Name]++
		}
	}
	for _, cm := range []*ClassModel{leaf, shared, mid, a, b} {
		assert.Equal(t, 1, seen[cm.Name], cm.Name.Local)
	}
	assert.Same(t, plan.UnitOf(qname("Shared")).Root(), shared)
	assert.Nil(t, plan.UnitOf(qname("Missing")))
}

func TestPlanOutputSelfReference(t *testing.T) {
	node := class("Node")
	node.Properties = append(node.Properties, &PropertyModel{Name: "Node", ClassType: node})

	roots := []*ClassModel{node}
	plan := PlanOutput(roots, CountReferences(roots))
	assert.Equal(t, [][]string{{"Node"}}, unitNames(plan))
}

func TestPlanSharedCode(t *testing.T) {
	schema := loadSchema(t, schemaDoc(codeSchema))

	compiler := NewCompiler(schema, DefaultSettings("Trade.Models"))
	_, plan, err := compiler.Plan([]string{"Order", "Invoice"})
	require.NoError(t, err)

	assert.Equal(t, 2, plan.Counts[qname("Code")])
	assert.Equal(t, 1, plan.Counts[qname("Line")])
	assert.Equal(t, [][]string{{"Order", "Line"}, {"Code"}, {"Invoice"}}, unitNames(plan))

	code := plan.UnitOf(qname("Code")).Root()
	assert.True(t, code.IsRoot)
	require.Len(t, code.Properties, 2)

	value := code.Properties[0]
	assert.Equal(t, "Value", value.Name)
	assert.Equal(t, "string", value.ScalarType)
	assert.True(t, value.Required)
	assert.Equal(t, "Pattern: [A-Z]{3}", value.Remarks)
	assert.Contains(t, value.Annotations, Annotation(PatternConstraint{Pattern: "[A-Z]{3}"}))

	listID := code.Properties[1]
	assert.Equal(t, "listId", listID.Name)
	assert.False(t, listID.Required)
}

func TestCheckNames(t *testing.T) {
	shared := class("Shared")
	plan := PlanOutput([]*ClassModel{class("A", shared), class("B", shared)}, nil)
	require.NoError(t, plan.CheckNames())

	foreign := &ClassModel{Name: xsd.QName{Namespace: "urn:other", Local: "Shared"}}
	root := class("Root", class("Holder", shared), foreign)
	plan = PlanOutput([]*ClassModel{root}, CountReferences([]*ClassModel{root}))
	err := plan.CheckNames()
	require.ErrorIs(t, err, ErrNameCollision)
	assert.Contains(t, err.Error(), "{urn:test}Shared and {urn:other}Shared")
}
