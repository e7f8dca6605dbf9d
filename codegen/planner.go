package codegen

import (
	"fmt"

	xsd "github.com/agentflare-ai/go-xsdgen"
)

// OutputUnit is one generated file: a root or shared class followed by the
// classes inlined into it.
type OutputUnit struct {
	Classes []*ClassModel
}

// Root returns the class the unit is named after
func (u *OutputUnit) Root() *ClassModel {
	return u.Classes[0]
}

// FileName returns the file name of the unit
func (u *OutputUnit) FileName() string {
	return u.Root().Name.Local + ".cs"
}

// Plan assigns every class reachable from the roots to exactly one output
// unit.
type Plan struct {
	Units  []*OutputUnit
	Counts map[xsd.QName]int
}

// PlanOutput partitions the forest into output units. A class referenced
// fewer than two times is inlined into the unit of its only referencing
// class. Any other class becomes its own unit, planned once, after the unit
// that discovered it.
func PlanOutput(roots []*ClassModel, counts map[xsd.QName]int) *Plan {
	plan := &Plan{Counts: counts}
	planned := make(map[xsd.QName]bool)

	for _, root := range roots {
		queue := []*ClassModel{root}
		for len(queue) > 0 {
			next := queue[0]
			queue = queue[1:]
			if planned[next.Name] {
				continue
			}
			planned[next.Name] = true

			unit := &OutputUnit{Classes: []*ClassModel{next}}
			queue = append(queue, inline(unit, next, counts, planned)...)
			plan.Units = append(plan.Units, unit)
		}
	}
	return plan
}

// inline appends the single-use classes below cm to unit, depth first, and
// returns the shared classes it found.
func inline(unit *OutputUnit, cm *ClassModel, counts map[xsd.QName]int, planned map[xsd.QName]bool) []*ClassModel {
	var promoted []*ClassModel
	for _, p := range cm.Properties {
		child := p.ClassType
		if child == nil {
			continue
		}
		if counts[child.Name] >= 2 {
			promoted = append(promoted, child)
			continue
		}
		if planned[child.Name] {
			continue
		}
		planned[child.Name] = true
		unit.Classes = append(unit.Classes, child)
		promoted = append(promoted, inline(unit, child, counts, planned)...)
	}
	return promoted
}

// CheckNames fails when two planned classes have the same local name, which
// would give them the same C# name and possibly the same file.
func (p *Plan) CheckNames() error {
	seen := make(map[string]xsd.QName)
	for _, u := range p.Units {
		for _, cm := range u.Classes {
			if prev, ok := seen[cm.Name.Local]; ok {
				return fmt.Errorf("%w: %s and %s both generate class %s (%s)",
					ErrNameCollision, prev, cm.Name, cm.Name.Local, u.FileName())
			}
			seen[cm.Name.Local] = cm.Name
		}
	}
	return nil
}

// UnitOf returns the unit that holds the class, or nil
func (p *Plan) UnitOf(name xsd.QName) *OutputUnit {
	for _, u := range p.Units {
		for _, cm := range u.Classes {
			if cm.Name == name {
				return u
			}
		}
	}
	return nil
}
