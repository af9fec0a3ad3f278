package schema

// Source describes a referenced table for batched id -> label lookups.
type Source struct {
	Table string
	ID    string
	Label string
}
