package inventory

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"db-inventory/internal/dialect"

	"go.yaml.in/yaml/v3"
)

const vaultHeader = `---
# Ansible Vault file for database passwords
# This file will be encrypted. DO NOT commit unencrypted!

`

// GlobalVars is the vars block written under "all".
type GlobalVars struct {
	BaseResultsDir    string
	Connection        string
	DebugMode         bool
	PythonInterpreter string
}

// DefaultGlobalVars returns the stock vars block.
func DefaultGlobalVars() GlobalVars {
	return GlobalVars{
		BaseResultsDir:    "/tmp/compliance_scans",
		Connection:        "local",
		DebugMode:         false,
		PythonInterpreter: "{{ ansible_playbook_python }}",
	}
}

func (v GlobalVars) node() *yaml.Node {
	return mapping(
		str("base_results_dir"), str(v.BaseResultsDir),
		str("ansible_connection"), str(v.Connection),
		str("inspec_debug_mode"), boolean(v.DebugMode),
		str("ansible_python_interpreter"), str(v.PythonInterpreter),
	)
}

func (h HostVars) node(d dialect.Dialect) *yaml.Node {
	values := map[dialect.Field]*yaml.Node{
		dialect.FieldServer:   str(h.Server),
		dialect.FieldPort:     integer(h.Port),
		dialect.FieldDatabase: str(h.Database),
		dialect.FieldService:  str(h.Service),
		dialect.FieldVersion:  str(h.Version),
		dialect.FieldUsername: str(h.Username),
		dialect.FieldHostID:   str(h.HostID),
	}
	m := mapping()
	for _, f := range dialect.Fields {
		m.Content = append(m.Content, str(d.Key(f)), values[f])
	}
	return m
}

func (g *Group) node() *yaml.Node {
	hosts := mapping()
	for _, id := range g.order {
		hosts.Content = append(hosts.Content, str(id), g.hosts[id].node(g.Dialect))
	}
	if len(hosts.Content) == 0 {
		hosts.Style = yaml.FlowStyle
	}
	return mapping(str("hosts"), hosts)
}

// Node renders the inventory document with vars injected under "all".
func (inv *Inventory) Node(vars GlobalVars) *yaml.Node {
	children := mapping()
	for _, g := range inv.groups {
		children.Content = append(children.Content, str(g.Name()), g.node())
	}
	return mapping(
		str("all"), mapping(
			str("children"), children,
			str("vars"), vars.node(),
		),
	)
}

// Node renders the vault entries in first-seen order.
func (v *Vault) Node() *yaml.Node {
	m := mapping()
	for _, key := range v.order {
		m.Content = append(m.Content, str(key), str(v.values[key]))
	}
	if len(m.Content) == 0 {
		m.Style = yaml.FlowStyle
	}
	return m
}

// EncodeInventory writes the inventory document as YAML.
func EncodeInventory(w io.Writer, inv *Inventory, vars GlobalVars) error {
	return encode(w, inv.Node(vars))
}

// EncodeVault writes the vault header comments followed by the entries.
func EncodeVault(w io.Writer, v *Vault) error {
	if _, err := io.WriteString(w, vaultHeader); err != nil {
		return err
	}
	return encode(w, v.Node())
}

// WriteInventory writes the inventory document to path.
func WriteInventory(path string, inv *Inventory, vars GlobalVars) error {
	return writeFile(path, func(w io.Writer) error {
		return EncodeInventory(w, inv, vars)
	})
}

// WriteVault writes the vault placeholder document to path.
func WriteVault(path string, v *Vault) error {
	return writeFile(path, func(w io.Writer) error {
		return EncodeVault(w, v)
	})
}

func writeFile(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if err := fn(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func encode(w io.Writer, n *yaml.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return err
	}
	return enc.Close()
}

func mapping(content ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: content}
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func integer(i int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(i)}
}

func boolean(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
}
