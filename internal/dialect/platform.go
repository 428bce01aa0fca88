package dialect

import "strings"

// Platform is the database engine family of an inventory entry.
type Platform int

const (
	Unknown Platform = iota
	MSSQL
	Oracle
	Sybase
)

// Platforms lists the recognised platforms in inventory group order.
var Platforms = []Platform{MSSQL, Oracle, Sybase}

// ParsePlatform maps a flat-file platform token to a Platform.
// Matching is case-insensitive; anything else is Unknown.
func ParsePlatform(s string) Platform {
	switch strings.ToUpper(s) {
	case "MSSQL":
		return MSSQL
	case "ORACLE":
		return Oracle
	case "SYBASE":
		return Sybase
	default:
		return Unknown
	}
}

func (p Platform) String() string {
	switch p {
	case MSSQL:
		return "MSSQL"
	case Oracle:
		return "ORACLE"
	case Sybase:
		return "SYBASE"
	default:
		return "UNKNOWN"
	}
}
