package xsd

import "fmt"

// maxDerivationDepth bounds walks along base type chains so that a
// malformed circular derivation cannot loop forever.
const maxDerivationDepth = 64

// GlobalElements returns the top-level element declarations in the order
// they were declared.
func (s *Schema) GlobalElements() []*ElementDecl {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*ElementDecl, 0, len(s.elementOrder))
	for _, name := range s.elementOrder {
		if decl, ok := s.ElementDecls[name]; ok {
			out = append(out, decl)
		}
	}
	return out
}

// ElementNames returns the local names of every top-level element
func (s *Schema) ElementNames() []string {
	elements := s.GlobalElements()
	names := make([]string, 0, len(elements))
	for _, decl := range elements {
		names = append(names, decl.Name.Local)
	}
	return names
}

// LookupElement returns the first top-level element with the given local
// name, or nil.
func (s *Schema) LookupElement(local string) *ElementDecl {
	for _, decl := range s.GlobalElements() {
		if decl.Name.Local == local {
			return decl
		}
	}
	return nil
}

// IsGlobal reports whether name is a top-level element declaration
func (s *Schema) IsGlobal(name QName) bool {
	return s.GlobalElement(name) != nil
}

// GlobalElement returns the top-level element declaration of name, or nil
func (s *Schema) GlobalElement(name QName) *ElementDecl {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ElementDecls[name]
}

// ResolveType returns the named type definition. Built-in types are returned
// as a *SimpleType in the XML Schema namespace. It returns nil if the name
// cannot be resolved.
func (s *Schema) ResolveType(name QName) Type {
	if name.IsZero() {
		return nil
	}

	if name.Namespace == XSDNamespace {
		if b := GetBuiltinType(name.Local); b != nil {
			return &SimpleType{QName: name, builtin: b}
		}
		return nil
	}

	s.mu.RLock()
	t, ok := s.TypeDefs[name]
	s.mu.RUnlock()
	if ok {
		return t
	}

	// Schemas without a default namespace declaration reference built-ins by
	// their bare local name
	if name.Namespace == "" {
		if b := GetBuiltinType(name.Local); b != nil {
			return &SimpleType{QName: QName{Namespace: XSDNamespace, Local: name.Local}, builtin: b}
		}
	}
	return nil
}

// ElementType returns the type of an element declaration: its anonymous type,
// its named type, or xs:anyType when neither is given.
func (s *Schema) ElementType(decl *ElementDecl) Type {
	if decl == nil {
		return nil
	}
	if decl.Type != nil {
		return decl.Type
	}
	if decl.TypeName.IsZero() {
		return s.ResolveType(QName{Namespace: XSDNamespace, Local: "anyType"})
	}
	return s.ResolveType(decl.TypeName)
}

// ResolveParticle replaces an element or group reference with the
// referenced global declaration or model group, carrying the occurrence
// bounds of the reference. Other particles are returned unchanged. It
// returns nil for a dangling reference.
func (s *Schema) ResolveParticle(p Particle) Particle {
	if gr, ok := p.(*GroupRef); ok {
		group, err := s.groupParticle(gr)
		if err != nil {
			return nil
		}
		return group
	}

	ref, ok := p.(*ElementRef)
	if !ok {
		return p
	}

	s.mu.RLock()
	decl, found := s.ElementDecls[ref.Ref]
	s.mu.RUnlock()
	if !found {
		return nil
	}

	resolved := *decl
	resolved.MinOcc = ref.MinOcc
	resolved.MaxOcc = ref.MaxOcc
	return &resolved
}

// ContentParticle returns the effective model group of a complex type, with
// named group references resolved and complex content extensions appended
// to their base content. Empty and simple content yield a nil particle.
func (s *Schema) ContentParticle(ct *ComplexType) (Particle, error) {
	return s.contentParticle(ct, 0)
}

func (s *Schema) contentParticle(ct *ComplexType, depth int) (Particle, error) {
	if ct == nil {
		return nil, nil
	}
	if depth > maxDerivationDepth {
		return nil, fmt.Errorf("type %s: derivation chain too deep", ct.QName)
	}

	switch content := ct.Content.(type) {
	case nil, *SimpleContent:
		return nil, nil
	case *ModelGroup, *GroupRef:
		return s.groupParticle(content)
	case *ComplexContent:
		if content.Restriction != nil {
			return s.groupParticle(content.Restriction.Content)
		}
		if content.Extension == nil {
			return nil, nil
		}

		var base Particle
		if baseType, ok := s.ResolveType(content.Extension.Base).(*ComplexType); ok {
			var err error
			if base, err = s.contentParticle(baseType, depth+1); err != nil {
				return nil, err
			}
		} else if s.ResolveType(content.Extension.Base) == nil {
			return nil, fmt.Errorf("type %s: unresolved base type %s", ct.QName, content.Extension.Base)
		}

		ext, err := s.groupParticle(content.Extension.Content)
		if err != nil {
			return nil, err
		}
		return appendParticles(base, ext), nil
	default:
		return nil, fmt.Errorf("type %s: unknown content %s", ct.QName, content.contentKind())
	}
}

func (s *Schema) groupParticle(content Content) (Particle, error) {
	switch c := content.(type) {
	case nil:
		return nil, nil
	case *ModelGroup:
		return c, nil
	case *GroupRef:
		s.mu.RLock()
		group, ok := s.Groups[c.Ref]
		s.mu.RUnlock()
		if !ok {
			return nil, fmt.Errorf("unresolved group %s", c.Ref)
		}
		resolved := *group
		resolved.MinOcc = c.MinOcc
		resolved.MaxOcc = c.MaxOcc
		return &resolved, nil
	}
	return nil, fmt.Errorf("content %s is not a model group", content.contentKind())
}

// appendParticles joins base content and extension content into one
// sequence. Plain sequences are flattened so that the element particles keep
// their own occurrence bounds.
func appendParticles(base, ext Particle) Particle {
	if base == nil {
		return ext
	}
	if ext == nil {
		return base
	}

	joined := &ModelGroup{Kind: SequenceGroup, MinOcc: 1, MaxOcc: 1}
	for _, p := range []Particle{base, ext} {
		if mg, ok := p.(*ModelGroup); ok && mg.Kind == SequenceGroup && mg.MinOcc == 1 && mg.MaxOcc == 1 {
			joined.Particles = append(joined.Particles, mg.Particles...)
			continue
		}
		joined.Particles = append(joined.Particles, p)
	}
	return joined
}

// SimpleContentBase returns the simple type carried as the text value of a
// simple content complex type, or nil if ct does not have simple content.
// Facets of a simple content restriction are applied to the returned type.
func (s *Schema) SimpleContentBase(ct *ComplexType) *SimpleType {
	return s.simpleContentBase(ct, 0)
}

func (s *Schema) simpleContentBase(ct *ComplexType, depth int) *SimpleType {
	sc, ok := ct.Content.(*SimpleContent)
	if !ok || depth > maxDerivationDepth {
		return nil
	}

	if sc.Extension != nil {
		switch base := s.ResolveType(sc.Extension.Base).(type) {
		case *SimpleType:
			return base
		case *ComplexType:
			return s.simpleContentBase(base, depth+1)
		}
		return nil
	}

	if sc.Restriction != nil {
		var base *SimpleType
		switch t := s.ResolveType(sc.Restriction.Base).(type) {
		case *SimpleType:
			base = t
		case *ComplexType:
			base = s.simpleContentBase(t, depth+1)
		}
		if sc.Restriction.BaseInline != nil {
			base = sc.Restriction.BaseInline
		}
		if base == nil {
			return nil
		}
		if len(sc.Restriction.Facets) == 0 {
			return base
		}
		return &SimpleType{
			Restriction:   &Restriction{BaseInline: base, Facets: sc.Restriction.Facets},
			Documentation: base.Documentation,
		}
	}
	return nil
}

// AttributeUses returns the attributes of a complex type, including those
// inherited from its base type and those pulled in through attribute groups.
// References are resolved, derived declarations replace inherited ones of
// the same name, and prohibited attributes are dropped.
func (s *Schema) AttributeUses(ct *ComplexType) []*AttributeDecl {
	var uses attributeSet
	s.collectAttributes(ct, &uses, 0)

	out := make([]*AttributeDecl, 0, len(uses.order))
	for _, attr := range uses.order {
		if attr.Use != ProhibitedUse {
			out = append(out, attr)
		}
	}
	return out
}

type attributeSet struct {
	order []*AttributeDecl
	index map[QName]int
}

func (as *attributeSet) add(attr *AttributeDecl) {
	if as.index == nil {
		as.index = make(map[QName]int)
	}
	if i, ok := as.index[attr.Name]; ok {
		as.order[i] = attr
		return
	}
	as.index[attr.Name] = len(as.order)
	as.order = append(as.order, attr)
}

func (s *Schema) collectAttributes(ct *ComplexType, uses *attributeSet, depth int) {
	if ct == nil || depth > maxDerivationDepth {
		return
	}

	var (
		base   QName
		attrs  []*AttributeDecl
		groups []QName
	)
	switch content := ct.Content.(type) {
	case *SimpleContent:
		if ext := content.Extension; ext != nil {
			base, attrs, groups = ext.Base, ext.Attributes, ext.AttributeGroup
		} else if r := content.Restriction; r != nil {
			base, attrs, groups = r.Base, r.Attributes, r.AttributeGroup
		}
	case *ComplexContent:
		if ext := content.Extension; ext != nil {
			base, attrs, groups = ext.Base, ext.Attributes, ext.AttributeGroup
		} else if r := content.Restriction; r != nil {
			base, attrs, groups = r.Base, r.Attributes, r.AttributeGroup
		}
	}

	if baseType, ok := s.ResolveType(base).(*ComplexType); ok {
		s.collectAttributes(baseType, uses, depth+1)
	}

	for _, attr := range append(append([]*AttributeDecl{}, attrs...), ct.Attributes...) {
		if resolved := s.resolveAttribute(attr); resolved != nil {
			uses.add(resolved)
		}
	}
	for _, group := range append(append([]QName{}, groups...), ct.AttributeGroup...) {
		s.collectAttributeGroup(group, uses, make(map[QName]bool))
	}
}

func (s *Schema) collectAttributeGroup(name QName, uses *attributeSet, seen map[QName]bool) {
	if seen[name] {
		return
	}
	seen[name] = true

	s.mu.RLock()
	group, ok := s.AttributeGroups[name]
	s.mu.RUnlock()
	if !ok {
		return
	}

	for _, attr := range group.Attributes {
		if resolved := s.resolveAttribute(attr); resolved != nil {
			uses.add(resolved)
		}
	}
	for _, nested := range group.Groups {
		s.collectAttributeGroup(nested, uses, seen)
	}
}

// resolveAttribute replaces an attribute reference with a copy of the global
// declaration carrying the use of the reference.
func (s *Schema) resolveAttribute(attr *AttributeDecl) *AttributeDecl {
	if attr.Ref.IsZero() {
		return attr
	}

	s.mu.RLock()
	global, ok := s.AttributeDecls[attr.Ref]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	resolved := *global
	resolved.Use = attr.Use
	if attr.Default != "" {
		resolved.Default = attr.Default
	}
	if attr.Fixed != "" {
		resolved.Fixed = attr.Fixed
	}
	return &resolved
}

// AttributeType returns the simple type of an attribute, xs:anySimpleType
// when none is declared.
func (s *Schema) AttributeType(attr *AttributeDecl) *SimpleType {
	if attr.Type != nil {
		if st, ok := attr.Type.(*SimpleType); ok {
			return st
		}
	}
	name := attr.TypeName
	if name.IsZero() {
		name = QName{Namespace: XSDNamespace, Local: "anySimpleType"}
	}
	st, _ := s.ResolveType(name).(*SimpleType)
	return st
}

// TypeCode returns the built-in type a simple type is ultimately derived
// from. List and union types report TypeCodeString.
func (s *Schema) TypeCode(st *SimpleType) TypeCode {
	for depth := 0; st != nil && depth <= maxDerivationDepth; depth++ {
		if st.builtin != nil {
			return st.builtin.Code
		}
		if st.List != nil || st.Union != nil {
			return TypeCodeString
		}
		if st.Restriction == nil {
			return TypeCodeNone
		}
		if st.Restriction.BaseInline != nil {
			st = st.Restriction.BaseInline
			continue
		}
		next, ok := s.ResolveType(st.Restriction.Base).(*SimpleType)
		if !ok {
			return TypeCodeNone
		}
		st = next
	}
	return TypeCodeNone
}

// Facets returns the facets of the direct restriction of st
func (s *Schema) Facets(st *SimpleType) []Facet {
	if st == nil || st.Restriction == nil {
		return nil
	}
	return append([]Facet(nil), st.Restriction.Facets...)
}
