package inventory

import (
	"strings"

	"db-inventory/internal/dialect"
)

const (
	// DefaultUsername is the service account written for every host.
	DefaultUsername = "nist_scan_user"

	// PasswordPlaceholder is the only value ever written to the vault file.
	// Real credentials are provisioned out of band.
	PasswordPlaceholder = "DB_TEAM_TO_PROVIDE"
)

var hostIDReplacer = strings.NewReplacer(".", "_", "-", "_")

// HostID derives the inventory host name from server, database and port.
func HostID(server, database, port string) string {
	return hostIDReplacer.Replace(server + "_" + database + "_" + port)
}

// VaultKey is the vault variable holding the password of a host.
func VaultKey(hostID string) string {
	return "vault_" + hostID + "_password"
}

// HostVars are the variables of one inventory host. Keys are only chosen
// at write time, from the group's dialect.
type HostVars struct {
	Server   string
	Port     int
	Database string
	Service  string
	Version  string
	Username string
	HostID   string
}

// Group holds the hosts of one platform in first-seen order.
type Group struct {
	Dialect dialect.Dialect

	order []string
	hosts map[string]HostVars
}

func newGroup(d dialect.Dialect) *Group {
	return &Group{Dialect: d, hosts: make(map[string]HostVars)}
}

// Name is the inventory group name, e.g. "mssql_databases".
func (g *Group) Name() string {
	return g.Dialect.GroupName()
}

// Put stores vars under id. An existing id keeps its position and gets
// the new values.
func (g *Group) Put(id string, vars HostVars) {
	if _, ok := g.hosts[id]; !ok {
		g.order = append(g.order, id)
	}
	g.hosts[id] = vars
}

// Get returns the vars stored under id.
func (g *Group) Get(id string) (HostVars, bool) {
	vars, ok := g.hosts[id]
	return vars, ok
}

// HostIDs returns host identifiers in insertion order.
func (g *Group) HostIDs() []string {
	return append([]string(nil), g.order...)
}

// Len is the number of hosts in the group.
func (g *Group) Len() int {
	return len(g.order)
}

// Inventory is the grouped host document, one group per platform.
type Inventory struct {
	groups []*Group
}

// New returns an inventory with an empty group for every platform.
func New() *Inventory {
	inv := &Inventory{}
	for _, p := range dialect.Platforms {
		d, _ := dialect.Get(p)
		inv.groups = append(inv.groups, newGroup(d))
	}
	return inv
}

// Group returns the group of p, or nil for Unknown.
func (inv *Inventory) Group(p dialect.Platform) *Group {
	for _, g := range inv.groups {
		if g.Dialect.Platform() == p {
			return g
		}
	}
	return nil
}

// Groups returns all groups in document order.
func (inv *Inventory) Groups() []*Group {
	return inv.groups
}

// Total counts hosts across all groups.
func (inv *Inventory) Total() int {
	n := 0
	for _, g := range inv.groups {
		n += g.Len()
	}
	return n
}

// Vault maps vault variable names to password placeholders.
type Vault struct {
	order  []string
	values map[string]string
}

// NewVault returns an empty Vault.
func NewVault() *Vault {
	return &Vault{values: make(map[string]string)}
}

// Register adds the placeholder entry for hostID once.
func (v *Vault) Register(hostID string) {
	key := VaultKey(hostID)
	if _, ok := v.values[key]; !ok {
		v.order = append(v.order, key)
	}
	v.values[key] = PasswordPlaceholder
}

// Get returns the value of a vault key.
func (v *Vault) Get(key string) (string, bool) {
	val, ok := v.values[key]
	return val, ok
}

// Keys returns vault keys in first-seen order.
func (v *Vault) Keys() []string {
	return append([]string(nil), v.order...)
}

// Len is the number of vault entries.
func (v *Vault) Len() int {
	return len(v.order)
}
