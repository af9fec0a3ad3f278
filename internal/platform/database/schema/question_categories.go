package schema

// QuestionCategoryTable represents the 'question_categories' table
type QuestionCategoryTable struct {
	Table string
	ID    string
	Name  string
}

// QuestionCategory is the schema definition for question_categories
var QuestionCategory = QuestionCategoryTable{
	Table: "question_categories",
	ID:    "id",
	Name:  "name",
}

// Source returns the lookup descriptor for question_categories.
func (t QuestionCategoryTable) Source() Source {
	return Source{Table: t.Table, ID: t.ID, Label: t.Name}
}
