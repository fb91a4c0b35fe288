package main

import (
	"fmt"

	"region-tracer/internal/project"
	"region-tracer/internal/replay"

	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay SCRIPT",
	Short: "Apply a recorded editing session and write the result",
	Long: `Loads the image or document named by SCRIPT, applies its steps
(select, draw, calibrate, recolor, delete, rename) and writes the
resulting document.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := replay.Load(args[0])
		if err != nil {
			return err
		}
		e, _, err := newEngine(cmd)
		if err != nil {
			return err
		}
		if err := s.Run(e); err != nil {
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
	replayCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(replayCmd)
}
