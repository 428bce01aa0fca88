package dialect

var dialects = map[Platform]Dialect{
	MSSQL:  &MSSQLDialect{},
	Oracle: &OracleDialect{},
	Sybase: &SybaseDialect{},
}

// Get returns the Dialect for a recognised platform.
// The second result is false for Unknown.
func Get(p Platform) (Dialect, bool) {
	d, ok := dialects[p]
	return d, ok
}

// Ensure interface implementation
var _ Dialect = (*MSSQLDialect)(nil)
var _ Dialect = (*OracleDialect)(nil)
var _ Dialect = (*SybaseDialect)(nil)
