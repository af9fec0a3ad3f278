package schema

// CareerCriteriaTable represents the 'career_criteria' table
type CareerCriteriaTable struct {
	Table    string
	ID       string
	Name     string
	CareerID string
	IsActive string
}

// CareerCriteria is the schema definition for career_criteria
var CareerCriteria = CareerCriteriaTable{
	Table:    "career_criteria",
	ID:       "id",
	Name:     "name",
	CareerID: "career_id",
	IsActive: "is_active",
}

// Source returns the lookup descriptor for career_criteria.
func (t CareerCriteriaTable) Source() Source {
	return Source{Table: t.Table, ID: t.ID, Label: t.Name}
}
