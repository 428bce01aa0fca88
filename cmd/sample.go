package cmd

import (
	"fmt"

	"db-inventory/internal/flatfile"

	"github.com/spf13/cobra"
)

var (
	sampleRows int
	sampleSeed int64
)

var sampleCmd = &cobra.Command{
	Use:   "sample FILE",
	Short: "Generate a sample flat file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		if err := flatfile.WriteSample(args[0], sampleRows, sampleSeed); err != nil {
			return fmt.Errorf("failed to write sample: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Sample flat file written to: %s\n", args[0])
		return nil
	},
}

func init() {
	RootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().IntVar(&sampleRows, "rows", 0, "Append this many randomly generated rows")
	sampleCmd.Flags().Int64Var(&sampleSeed, "seed", 0, "Seed for generated rows (0 = random)")
}
