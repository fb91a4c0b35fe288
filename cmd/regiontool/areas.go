package main

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"os"
	"os/signal"

	"region-tracer/internal/document"
	"region-tracer/internal/project"
	"region-tracer/pkg/colorutil"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var areasCmd = &cobra.Command{
	Use:   "areas FILE",
	Short: "Print the area per colour of a document",
	Long: `Groups the regions of FILE by colour and prints the total area of each
group, in m2 when the document is calibrated and px2 otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: runAreas,
}

func init() {
	areasCmd.Flags().BoolP("watch", "w", false, "Reprint whenever the file changes")
	areasCmd.Flags().String("lang", "en", "Locale for number formatting")
	rootCmd.AddCommand(areasCmd)
}

func runAreas(cmd *cobra.Command, args []string) error {
	path := args[0]
	watch, _ := cmd.Flags().GetBool("watch")
	lang, _ := cmd.Flags().GetString("lang")

	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("invalid --lang: %w", err)
	}
	printer := message.NewPrinter(tag)
	out := cmd.OutOrStdout()

	if !watch {
		return printAreas(cmd, out, printer, path)
	}
	if err := printAreas(cmd, out, printer, path); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	changes, err := project.Watch(ctx, path)
	if err != nil {
		return err
	}
	for range changes {
		fmt.Fprintln(out)
		if err := printAreas(cmd, out, printer, path); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
	}
	return nil
}

func printAreas(cmd *cobra.Command, out io.Writer, printer *message.Printer, path string) error {
	e, err := importFile(cmd, path)
	if err != nil {
		return err
	}
	totals, err := e.CalculateAreas()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	writeTotals(out, termenv.EnvColorProfile(), printer, totals)
	return nil
}

func writeTotals(out io.Writer, profile termenv.Profile, printer *message.Printer, totals []document.AreaTotal) {
	for _, t := range totals {
		c, ok := colorutil.ParseRGBA(t.Color)
		if !ok {
			c = colorutil.Magenta
		}
		swatch := profile.String("  ").Background(profile.Color(hex(c)))
		fmt.Fprintf(out, "%s %-20s %3d  %s\n", swatch, t.Name, t.Count, t.Format(printer))
	}
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
