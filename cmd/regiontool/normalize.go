package main

import (
	"fmt"

	"region-tracer/internal/project"

	"github.com/spf13/cobra"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize FILE",
	Short: "Rewrite a document in canonical form",
	Long: `Parses FILE leniently (xlink:href images, viewBox sizes, fill colours,
skipped short polygons) and writes it back in canonical form.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := importFile(cmd, args[0])
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			return e.ExportTo(cmd.OutOrStdout())
		}
		if err := project.Save(out, e.Document()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d regions to %s\n", e.Document().Len(), out)
		return nil
	},
}

func init() {
	normalizeCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(normalizeCmd)
}
