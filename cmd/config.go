package cmd

import (
	"fmt"
	"strings"

	"db-inventory/internal/inventory"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides: vars.debug_mode is read
// from DB_INVENTORY_VARS_DEBUG_MODE.
const EnvPrefix = "DB_INVENTORY"

type VarsConfig struct {
	BaseResultsDir string
	DebugMode      bool
}

type Settings struct {
	Username  string
	VaultFile string
	Vars      VarsConfig
}

func init() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("defaults.username", inventory.DefaultUsername)
	viper.SetDefault("output.vault", "")

	defaults := inventory.DefaultGlobalVars()
	viper.SetDefault("vars.base_results_dir", defaults.BaseResultsDir)
	viper.SetDefault("vars.debug_mode", defaults.DebugMode)
}

// LoadSettings resolves settings with Flag > Env > Config > Default precedence.
// Keys are looked up one by one so env and defaults apply to each of them.
func LoadSettings() (*Settings, error) {
	s := &Settings{
		Username:  viper.GetString("defaults.username"),
		VaultFile: viper.GetString("output.vault"),
		Vars: VarsConfig{
			BaseResultsDir: viper.GetString("vars.base_results_dir"),
			DebugMode:      viper.GetBool("vars.debug_mode"),
		},
	}
	if s.Username == "" {
		return nil, fmt.Errorf("defaults.username must not be empty")
	}
	return s, nil
}

// GlobalVars returns the inventory vars block with configured overrides.
// Only the results directory and debug flag are configurable.
func (s *Settings) GlobalVars() inventory.GlobalVars {
	vars := inventory.DefaultGlobalVars()
	if s.Vars.BaseResultsDir != "" {
		vars.BaseResultsDir = s.Vars.BaseResultsDir
	}
	vars.DebugMode = s.Vars.DebugMode
	return vars
}
