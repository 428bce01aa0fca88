package dialect

import (
	"fmt"
	"net/url"

	"github.com/microsoft/go-mssqldb/msdsn"
)

type MSSQLDialect struct{}

func (d *MSSQLDialect) Platform() Platform { return MSSQL }

func (d *MSSQLDialect) DisplayName() string { return "MSSQL" }

func (d *MSSQLDialect) Prefix() string { return "mssql" }

func (d *MSSQLDialect) GroupName() string { return GroupNameFor(d.Prefix()) }

func (d *MSSQLDialect) Key(f Field) string { return HostVarKey(d.Prefix(), f) }

// ConnectionURL returns a sqlserver:// URL. The service column holds the
// named instance; go-mssqldb ignores it when a port is given, but it is kept
// so the URL still documents which instance the port belongs to.
func (d *MSSQLDialect) ConnectionURL(t Target) (string, error) {
	query := url.Values{}
	query.Set("database", t.Database)

	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.User(t.Username),
		Host:     hostPort(t.Server, t.Port),
		RawQuery: query.Encode(),
	}
	if t.Service != "" {
		u.Path = "/" + t.Service
	}

	dsn := u.String()
	if _, err := msdsn.Parse(dsn); err != nil {
		return "", fmt.Errorf("invalid sqlserver connection string for %s: %w", t.Server, err)
	}
	return dsn, nil
}
