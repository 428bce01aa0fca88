package flatfile

import "db-inventory/internal/dialect"

const (
	// CommentMarker starts a comment line.
	CommentMarker = "#"
	// NullService in the service column means "no explicit service".
	NullService = "null"

	fieldCount = 6
)

// Record is one parsed data line:
// PLATFORM SERVER DATABASE SERVICE PORT VERSION
type Record struct {
	Line int // 1-based line number in the source file, 0 if unknown

	Platform     dialect.Platform
	PlatformName string // platform token as written
	Server       string
	Database     string
	Service      string
	Port         string // converted to an integer only when building host vars
	Version      string
}

// Fields returns the six tokens in file order.
func (r Record) Fields() []string {
	return []string{r.PlatformName, r.Server, r.Database, r.Service, r.Port, r.Version}
}

// ServiceName returns the service, or "" for the null sentinel.
func (r Record) ServiceName() string {
	if r.Service == NullService {
		return ""
	}
	return r.Service
}
