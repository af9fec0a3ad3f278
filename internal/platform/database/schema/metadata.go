package schema

// MetadataTable represents the 'metadata' table of stored files
type MetadataTable struct {
	Table      string
	ID         string
	ObjectType string
	ObjectID   string
	FileName   string
	FileURL    string
	FileSize   string
	CreatedAt  string
}

// Metadata is the schema definition for metadata
var Metadata = MetadataTable{
	Table:      "metadata",
	ID:         "id",
	ObjectType: "object_type",
	ObjectID:   "object_id",
	FileName:   "file_name",
	FileURL:    "file_url",
	FileSize:   "file_size",
	CreatedAt:  "created_at",
}

// Owner types stored in metadata.object_type.
const (
	ObjectTypeCareer = "CAREER"
	ObjectTypeSchool = "SCHOOL"
)
