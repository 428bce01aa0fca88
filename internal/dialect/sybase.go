package dialect

import (
	"net/url"
)

type SybaseDialect struct{}

func (d *SybaseDialect) Platform() Platform { return Sybase }

func (d *SybaseDialect) DisplayName() string { return "Sybase" }

func (d *SybaseDialect) Prefix() string { return "sybase" }

func (d *SybaseDialect) GroupName() string { return GroupNameFor(d.Prefix()) }

func (d *SybaseDialect) Key(f Field) string { return HostVarKey(d.Prefix(), f) }

// ConnectionURL returns a tds:// URL in the form accepted by the common
// Go TDS drivers. The service name, when present, becomes the servicename
// parameter.
func (d *SybaseDialect) ConnectionURL(t Target) (string, error) {
	u := &url.URL{
		Scheme: "tds",
		User:   url.User(t.Username),
		Host:   hostPort(t.Server, t.Port),
		Path:   "/" + t.Database,
	}
	if t.Service != "" {
		query := url.Values{}
		query.Set("servicename", t.Service)
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}
