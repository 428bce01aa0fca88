package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"db-inventory/internal/flatfile"
	"db-inventory/internal/inventory"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var dsnCmd = &cobra.Command{
	Use:   "dsn",
	Short: "Print a password-less connection string for every host",
	Long: `Parses the flat file the same way convert does and prints one line per
host: GROUP HOST_ID CONNECTION_URL. Nothing is connected to.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return viper.BindPFlag("defaults.username", cmd.Flags().Lookup("username"))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		settings, err := LoadSettings()
		if err != nil {
			return err
		}
		return runDSN(inputFile, settings.Username, Logger, cmd.OutOrStdout())
	},
}

func init() {
	RootCmd.AddCommand(dsnCmd)

	dsnCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input flat file with database details")
	dsnCmd.Flags().StringP("username", "u", inventory.DefaultUsername, "Default username for every host")
	dsnCmd.MarkFlagRequired("input")
}

func runDSN(input, username string, logger *zap.Logger, out io.Writer) error {
	records, err := flatfile.ReadFile(input, logger, nil)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("input file '%s' not found", input)
	}
	if err != nil {
		return err
	}

	inv, _, err := inventory.Build(records, username, logger)
	if err != nil {
		return err
	}

	for _, g := range inv.Groups() {
		for _, id := range g.HostIDs() {
			vars, _ := g.Get(id)
			url, err := g.Dialect.ConnectionURL(vars.Target())
			if err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
			fmt.Fprintf(out, "%s %s %s\n", g.Name(), id, url)
		}
	}
	return nil
}
