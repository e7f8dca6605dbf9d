package codegen

import (
	xsd "github.com/agentflare-ai/go-xsdgen"
)

// CountReferences counts, per class name, the roots and property sites that
// reference the class across the whole forest. The properties of a class
// are only counted on its first visit, so shared subtrees are not counted
// once per path that reaches them.
func CountReferences(roots []*ClassModel) map[xsd.QName]int {
	counts := make(map[xsd.QName]int)

	var visit func(*ClassModel)
	visit = func(cm *ClassModel) {
		counts[cm.Name]++
		if counts[cm.Name] > 1 {
			return
		}
		for _, p := range cm.Properties {
			if p.ClassType != nil {
				visit(p.ClassType)
			}
		}
	}

	for _, root := range roots {
		visit(root)
	}
	return counts
}
