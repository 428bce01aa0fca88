package dialect

import (
	go_ora "github.com/sijms/go-ora/v2"
)

type OracleDialect struct{}

func (d *OracleDialect) Platform() Platform { return Oracle }

func (d *OracleDialect) DisplayName() string { return "Oracle" }

func (d *OracleDialect) Prefix() string { return "oracle" }

func (d *OracleDialect) GroupName() string { return GroupNameFor(d.Prefix()) }

func (d *OracleDialect) Key(f Field) string { return HostVarKey(d.Prefix(), f) }

// ConnectionURL builds a go-ora URL. Without a service name the database
// column is used as the SID.
func (d *OracleDialect) ConnectionURL(t Target) (string, error) {
	var options map[string]string
	service := t.Service
	if service == "" {
		options = map[string]string{"SID": t.Database}
	}
	return go_ora.BuildUrl(t.Server, t.Port, service, t.Username, "", options), nil
}
