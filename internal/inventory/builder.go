package inventory

import (
	"fmt"
	"strconv"

	"db-inventory/internal/dialect"
	"db-inventory/internal/flatfile"

	"go.uber.org/zap"
)

// Builder folds parsed records into an Inventory and a Vault.
type Builder struct {
	username string
	logger   *zap.Logger

	inv   *Inventory
	vault *Vault
}

// NewBuilder returns an empty Builder. An empty username falls back to
// DefaultUsername and a nil logger discards output.
func NewBuilder(username string, logger *zap.Logger) *Builder {
	if username == "" {
		username = DefaultUsername
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		username: username,
		logger:   logger,
		inv:      New(),
		vault:    NewVault(),
	}
}

// Add places one record into its platform group. Records of an unknown
// platform are logged and dropped. A non-numeric port is an error.
func (b *Builder) Add(rec flatfile.Record) error {
	id := HostID(rec.Server, rec.Database, rec.Port)

	group := b.inv.Group(rec.Platform)
	if group == nil {
		b.logger.Warn("skipping unsupported platform",
			zap.Int("line", rec.Line),
			zap.String("platform", rec.PlatformName),
			zap.String("host_id", id))
		return nil
	}

	port, err := strconv.Atoi(rec.Port)
	if err != nil {
		return fmt.Errorf("line %d: invalid port %q: %w", rec.Line, rec.Port, err)
	}

	group.Put(id, HostVars{
		Server:   rec.Server,
		Port:     port,
		Database: rec.Database,
		Service:  rec.ServiceName(),
		Version:  rec.Version,
		Username: b.username,
		HostID:   id,
	})
	b.vault.Register(id)

	b.logger.Debug("host added",
		zap.String("group", group.Name()),
		zap.String("host_id", id))
	return nil
}

// Inventory returns the inventory built so far.
func (b *Builder) Inventory() *Inventory { return b.inv }

// Vault returns the password placeholders registered so far.
func (b *Builder) Vault() *Vault { return b.vault }

// Build runs every record through a new Builder in order.
func Build(records []flatfile.Record, username string, logger *zap.Logger) (*Inventory, *Vault, error) {
	b := NewBuilder(username, logger)
	for _, rec := range records {
		if err := b.Add(rec); err != nil {
			return nil, nil, err
		}
	}
	return b.Inventory(), b.Vault(), nil
}

// Target converts host vars into a dialect connection target.
func (h HostVars) Target() dialect.Target {
	return dialect.Target{
		Server:   h.Server,
		Port:     h.Port,
		Database: h.Database,
		Service:  h.Service,
		Username: h.Username,
	}
}
