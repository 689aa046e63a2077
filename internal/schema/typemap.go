package schema

// TypeMap holds named types in insertion order.
type TypeMap struct {
	names  []string
	byName map[string]TypeDefinition
}

func NewTypeMap() *TypeMap {
	return &TypeMap{byName: make(map[string]TypeDefinition)}
}

// Get returns the type with the given name, or nil.
func (m *TypeMap) Get(name string) TypeDefinition {
	return m.byName[name]
}

// Set stores def under its name. Replacing an existing type keeps its position.
func (m *TypeMap) Set(def TypeDefinition) {
	name := def.TypeName()
	if _, ok := m.byName[name]; !ok {
		m.names = append(m.names, name)
	}
	m.byName[name] = def
}

// Names returns the type names in insertion order.
func (m *TypeMap) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// All returns the types in insertion order.
func (m *TypeMap) All() []TypeDefinition {
	out := make([]TypeDefinition, 0, len(m.names))
	for _, name := range m.names {
		out = append(out, m.byName[name])
	}
	return out
}

func (m *TypeMap) Len() int {
	return len(m.names)
}

// DirectiveDefinitionList holds directive definitions in insertion order.
type DirectiveDefinitionList struct {
	defs []*DirectiveDefinition
}

func NewDirectiveDefinitionList() *DirectiveDefinitionList {
	return &DirectiveDefinitionList{}
}

// Get returns the definition with the given name, or nil.
func (l *DirectiveDefinitionList) Get(name string) *DirectiveDefinition {
	for _, d := range l.defs {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// Add appends def unless a definition with the same name exists. It reports
// whether def was added.
func (l *DirectiveDefinitionList) Add(def *DirectiveDefinition) bool {
	if l.Get(def.Name) != nil {
		return false
	}
	l.defs = append(l.defs, def)
	return true
}

// All returns the definitions in insertion order.
func (l *DirectiveDefinitionList) All() []*DirectiveDefinition {
	out := make([]*DirectiveDefinition, len(l.defs))
	copy(out, l.defs)
	return out
}

func (l *DirectiveDefinitionList) Len() int {
	return len(l.defs)
}
