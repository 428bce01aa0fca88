package dialect

// Field names one host variable. The full key is the platform prefix
// followed by the field, e.g. "oracle_port".
type Field string

const (
	FieldServer   Field = "server"
	FieldPort     Field = "port"
	FieldDatabase Field = "database"
	FieldService  Field = "service"
	FieldVersion  Field = "version"
	FieldUsername Field = "username"
	FieldHostID   Field = "host_id"
)

// Fields is the order in which host variables are written.
var Fields = []Field{
	FieldServer,
	FieldPort,
	FieldDatabase,
	FieldService,
	FieldVersion,
	FieldUsername,
	FieldHostID,
}

// Target is what a dialect needs to describe a connection. It never
// carries a password.
type Target struct {
	Server   string
	Port     int
	Database string
	Service  string // empty when the flat file said "null"
	Username string
}

// Dialect abstracts platform-specific naming and connection formats.
type Dialect interface {
	Platform() Platform
	// DisplayName is the human-readable engine name used in reports.
	DisplayName() string

	// Inventory naming
	Prefix() string
	GroupName() string
	Key(f Field) string

	// ConnectionURL renders a password-less connection string for t.
	ConnectionURL(t Target) (string, error)
}
