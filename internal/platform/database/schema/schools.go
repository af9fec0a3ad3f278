package schema

// SchoolTable represents the 'schools' table
type SchoolTable struct {
	Table        string
	ID           string
	Name         string
	Address      string
	PhoneNumber  string
	ContactEmail string
	CreatedAt    string
	UpdatedAt    string
}

// School is the schema definition for schools
var School = SchoolTable{
	Table:        "schools",
	ID:           "id",
	Name:         "name",
	Address:      "address",
	PhoneNumber:  "phone_number",
	ContactEmail: "contact_email",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}

// Source returns the lookup descriptor for schools.
func (t SchoolTable) Source() Source {
	return Source{Table: t.Table, ID: t.ID, Label: t.Name}
}
