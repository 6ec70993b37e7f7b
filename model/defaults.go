package model

// DefaultEntityName is the name given to freshly added entities.
const DefaultEntityName = "MyClass"

// NewEntity returns a freshly added entity: the default name, one seeded
// private property and one seeded public getter.
func NewEntity(id string, kind Kind) ClassEntity {
	return ClassEntity{
		ID:   id,
		Name: DefaultEntityName,
		Kind: kind,
		Properties: []Property{
			{Name: "id", Type: "string", Visibility: Private},
		},
		Methods: []Method{
			{Name: "getId", ReturnType: "string", Parameters: []Parameter{}, Visibility: Public},
		},
	}
}

// Duplicate returns a copy of e under a new id, with its name suffixed
// "_copy" and its position shifted by (50, 50). The generated code cache
// is not carried over.
func Duplicate(e ClassEntity, id string) ClassEntity {
	c := e.Clone()
	c.ID = id
	c.Name = e.Name + "_copy"
	c.Position = Position{X: e.Position.X + 50, Y: e.Position.Y + 50}
	c.GeneratedCode = ""
	return c
}
