package schema

// CommuneTable represents the 'communes' table
type CommuneTable struct {
	Table      string
	ID         string
	Name       string
	ProvinceID string
	CreatedAt  string
	UpdatedAt  string
}

// Commune is the schema definition for communes
var Commune = CommuneTable{
	Table:      "communes",
	ID:         "id",
	Name:       "name",
	ProvinceID: "province_id",
	CreatedAt:  "created_at",
	UpdatedAt:  "updated_at",
}

// Source returns the lookup descriptor for communes.
func (t CommuneTable) Source() Source {
	return Source{Table: t.Table, ID: t.ID, Label: t.Name}
}
