package schema

// CareerCategoryTable represents the 'career_categories' table
type CareerCategoryTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// CareerCategory is the schema definition for career_categories
var CareerCategory = CareerCategoryTable{
	Table:       "career_categories",
	ID:          "id",
	Name:        "name",
	Description: "description",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

// Source returns the lookup descriptor for career_categories.
func (t CareerCategoryTable) Source() Source {
	return Source{Table: t.Table, ID: t.ID, Label: t.Name}
}
