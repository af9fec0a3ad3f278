package schema

// CareerCategoryLinkTable represents the 'career_category_links' junction table
type CareerCategoryLinkTable struct {
	Table      string
	CareerID   string
	CategoryID string
}

// CareerCategoryLink is the schema definition for career_category_links
var CareerCategoryLink = CareerCategoryLinkTable{
	Table:      "career_category_links",
	CareerID:   "career_id",
	CategoryID: "category_id",
}
