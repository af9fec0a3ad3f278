package schema

// ProvinceTable represents the 'provinces' table
type ProvinceTable struct {
	Table     string
	ID        string
	Name      string
	CreatedAt string
	UpdatedAt string
}

// Province is the schema definition for provinces
var Province = ProvinceTable{
	Table:     "provinces",
	ID:        "id",
	Name:      "name",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

// Source returns the lookup descriptor for provinces.
func (t ProvinceTable) Source() Source {
	return Source{Table: t.Table, ID: t.ID, Label: t.Name}
}
