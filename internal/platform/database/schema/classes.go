package schema

// ClassTable represents the 'classes' table
type ClassTable struct {
	Table      string
	ID         string
	Name       string
	GradeLevel string
	SchoolID   string
	CreatedAt  string
	UpdatedAt  string
}

// Class is the schema definition for classes
var Class = ClassTable{
	Table:      "classes",
	ID:         "id",
	Name:       "name",
	GradeLevel: "grade_level",
	SchoolID:   "school_id",
	CreatedAt:  "created_at",
	UpdatedAt:  "updated_at",
}

// Source returns the lookup descriptor for classes.
func (t ClassTable) Source() Source {
	return Source{Table: t.Table, ID: t.ID, Label: t.Name}
}
