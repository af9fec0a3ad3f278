package schema

// CareerTable represents the 'careers' table
type CareerTable struct {
	Table       string
	ID          string
	Code        string
	Name        string
	Description string
	IsActive    string
	CreatedAt   string
	UpdatedAt   string
}

// Career is the schema definition for careers
var Career = CareerTable{
	Table:       "careers",
	ID:          "id",
	Code:        "code",
	Name:        "name",
	Description: "description",
	IsActive:    "is_active",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

// Source returns the lookup descriptor for careers.
func (t CareerTable) Source() Source {
	return Source{Table: t.Table, ID: t.ID, Label: t.Name}
}
