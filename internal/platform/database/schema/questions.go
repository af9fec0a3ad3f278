package schema

// QuestionTable represents the 'questions' table
type QuestionTable struct {
	Table            string
	ID               string
	Content          string
	QuestionType     string
	DifficultyLevel  string
	CategoryID       string
	CareerCriteriaID string
	Points           string
	Explanation      string
	Tags             string
	Metadata         string
	IsActive         string
	CreatedBy        string
	CreatedAt        string
	UpdatedAt        string
}

// Question is the schema definition for questions
var Question = QuestionTable{
	Table:            "questions",
	ID:               "id",
	Content:          "content",
	QuestionType:     "question_type",
	DifficultyLevel:  "difficulty_level",
	CategoryID:       "category_id",
	CareerCriteriaID: "career_criteria_id",
	Points:           "points",
	Explanation:      "explanation",
	Tags:             "tags",
	Metadata:         "metadata",
	IsActive:         "is_active",
	CreatedBy:        "created_by",
	CreatedAt:        "created_at",
	UpdatedAt:        "updated_at",
}

// QuestionOptionTable represents the 'question_options' table
type QuestionOptionTable struct {
	Table      string
	ID         string
	QuestionID string
	OptionKey  string
	OptionText string
	IsCorrect  string
	OrderIndex string
}

// QuestionOption is the schema definition for question_options
var QuestionOption = QuestionOptionTable{
	Table:      "question_options",
	ID:         "id",
	QuestionID: "question_id",
	OptionKey:  "option_key",
	OptionText: "option_text",
	IsCorrect:  "is_correct",
	OrderIndex: "order_index",
}

// ExamQuestionTable represents the 'exam_questions' junction table
type ExamQuestionTable struct {
	Table      string
	ExamID     string
	QuestionID string
}

// ExamQuestion is the schema definition for exam_questions
var ExamQuestion = ExamQuestionTable{
	Table:      "exam_questions",
	ExamID:     "exam_id",
	QuestionID: "question_id",
}
