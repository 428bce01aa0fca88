package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"db-inventory/internal/flatfile"
	"db-inventory/internal/inventory"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	inputFile    string
	outputFile   string
	showProgress bool
)

type convertOptions struct {
	Input    string
	Output   string
	Vault    string
	Username string
	Vars     inventory.GlobalVars
	Progress bool

	// ProgressOut receives the progress bar; nil means stderr.
	ProgressOut io.Writer
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a flat file into an Ansible inventory",
	Example: `  # Convert flat file to YAML inventory
  db-inventory convert -i databases.txt -o inventory.yml

  # Convert with vault template generation
  db-inventory convert -i databases.txt -o inventory.yml --vault-template vault.yml

  # Specify default username
  db-inventory convert -i databases.txt -o inventory.yml -u default_scan_user`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Bound here so convert and dsn can share the key.
		return viper.BindPFlag("defaults.username", cmd.Flags().Lookup("username"))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		settings, err := LoadSettings()
		if err != nil {
			return err
		}

		return runConvert(convertOptions{
			Input:    inputFile,
			Output:   outputFile,
			Vault:    settings.VaultFile,
			Username: settings.Username,
			Vars:     settings.GlobalVars(),
			Progress: showProgress,
		}, Logger, cmd.OutOrStdout())
	},
}

func init() {
	RootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input flat file with database details")
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output inventory file (YAML format)")
	convertCmd.Flags().StringP("username", "u", inventory.DefaultUsername, "Default username for every host")
	convertCmd.Flags().String("vault-template", "", "Generate Ansible Vault template file for passwords")
	convertCmd.Flags().BoolVar(&showProgress, "progress", false, "Show a progress bar while reading the input")

	convertCmd.MarkFlagRequired("input")
	convertCmd.MarkFlagRequired("output")

	viper.BindPFlag("output.vault", convertCmd.Flags().Lookup("vault-template"))
}

func runConvert(opts convertOptions, logger *zap.Logger, out io.Writer) error {
	if _, err := os.Stat(opts.Input); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("input file '%s' not found", opts.Input)
	}

	records, err := readInput(opts, logger)
	if err != nil {
		return fmt.Errorf("error during conversion: %w", err)
	}

	inv, vault, err := inventory.Build(records, opts.Username, logger)
	if err != nil {
		return fmt.Errorf("error during conversion: %w", err)
	}

	printSummary(out, inv)

	if err := inventory.WriteInventory(opts.Output, inv, opts.Vars); err != nil {
		return fmt.Errorf("error during conversion: %w", err)
	}
	fmt.Fprintf(out, "Inventory written to: %s\n", opts.Output)

	if opts.Vault != "" {
		if err := inventory.WriteVault(opts.Vault, vault); err != nil {
			return fmt.Errorf("error during conversion: %w", err)
		}
		fmt.Fprintf(out, "Vault file written to: %s\n", opts.Vault)
		fmt.Fprintf(out, "  Contains %d password variables\n", vault.Len())
		fmt.Fprintf(out, "  Encrypt with: ansible-vault encrypt %s --vault-password-file .vaultpass\n", opts.Vault)
	}

	printUsage(out, opts)
	return nil
}

// readInput parses the flat file, drawing a progress bar when asked. The
// bar is stopped before anything else is printed.
func readInput(opts convertOptions, logger *zap.Logger) ([]flatfile.Record, error) {
	if !opts.Progress {
		return flatfile.ReadFile(opts.Input, logger, nil)
	}

	out := opts.ProgressOut
	if out == nil {
		out = os.Stderr
	}
	p := uiprogress.New()
	p.SetOut(out)
	p.Start()

	var bar *uiprogress.Bar
	records, err := flatfile.ReadFile(opts.Input, logger, func(done, total int) {
		if bar == nil {
			bar = p.AddBar(total).AppendCompleted().PrependElapsed()
			bar.PrependFunc(func(b *uiprogress.Bar) string {
				return "Reading: "
			})
		}
		bar.Incr()
	})
	p.Stop()
	return records, err
}

func printSummary(out io.Writer, inv *inventory.Inventory) {
	fmt.Fprintln(out, "\nConversion Summary:")
	fmt.Fprintf(out, "  Total database hosts: %d\n", inv.Total())
	for _, g := range inv.Groups() {
		fmt.Fprintf(out, "  %s databases: %d\n", g.Dialect.DisplayName(), g.Len())
	}
	fmt.Fprintln(out)
}

func printUsage(out io.Writer, opts convertOptions) {
	vaultFile := opts.Vault
	if vaultFile == "" {
		vaultFile = "vault.yml"
	}
	fmt.Fprintln(out, "\nUsage:")
	fmt.Fprintln(out, "  # With a local .vaultpass file:")
	fmt.Fprintf(out, "  ansible-playbook -i %s run_mssql_inspec.yml -e @%s --vault-password-file .vaultpass\n", opts.Output, vaultFile)
	fmt.Fprintln(out, "\n  # For AAP (Ansible Automation Platform):")
	fmt.Fprintf(out, "  # Upload %s as inventory\n", opts.Output)
	fmt.Fprintf(out, "  # Add %s as encrypted extra vars\n", vaultFile)
}
