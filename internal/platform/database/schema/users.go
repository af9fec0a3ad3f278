package schema

// UserTable represents the 'users' table
type UserTable struct {
	Table    string
	ID       string
	FullName string
	Email    string
}

// User is the schema definition for users
var User = UserTable{
	Table:    "users",
	ID:       "id",
	FullName: "full_name",
	Email:    "email",
}

// Source returns the lookup descriptor for users.
func (t UserTable) Source() Source {
	return Source{Table: t.Table, ID: t.ID, Label: t.FullName}
}
