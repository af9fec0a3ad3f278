package schema

// CareerOrderTable represents the 'career_orders' table
type CareerOrderTable struct {
	Table     string
	ID        string
	SchoolID  string
	Status    string
	CreatedAt string
}

// CareerOrder is the schema definition for career_orders
var CareerOrder = CareerOrderTable{
	Table:     "career_orders",
	ID:        "id",
	SchoolID:  "school_id",
	Status:    "status",
	CreatedAt: "created_at",
}

// CareerOrderItemTable represents the 'career_order_items' table
type CareerOrderItemTable struct {
	Table    string
	ID       string
	OrderID  string
	CareerID string
	Price    string
}

// CareerOrderItem is the schema definition for career_order_items
var CareerOrderItem = CareerOrderItemTable{
	Table:    "career_order_items",
	ID:       "id",
	OrderID:  "order_id",
	CareerID: "career_id",
	Price:    "price",
}

// SchoolCareerLicenseTable represents the 'school_career_licenses' table
type SchoolCareerLicenseTable struct {
	Table      string
	ID         string
	SchoolID   string
	CareerID   string
	Status     string
	ExpiryDate string
}

// SchoolCareerLicense is the schema definition for school_career_licenses
var SchoolCareerLicense = SchoolCareerLicenseTable{
	Table:      "school_career_licenses",
	ID:         "id",
	SchoolID:   "school_id",
	CareerID:   "career_id",
	Status:     "status",
	ExpiryDate: "expiry_date",
}
