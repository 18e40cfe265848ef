package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MJE43/roulette-neighbors/internal/lookup"
	"github.com/MJE43/roulette-neighbors/internal/table"
	"github.com/MJE43/roulette-neighbors/internal/wheel"
)

func newNeighborsCmd(a *app) *cobra.Command {
	var (
		def    int
		format string
	)

	cmd := &cobra.Command{
		Use:   "neighbors [input]",
		Short: "Resolve numbers to their wheel neighbors and print both tables",
		Example: `  roulette neighbors "3 3, 8 1, 12"
  roulette neighbors 17 --default 3 --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.defaultNeighbors(cmd, def)
			if err != nil {
				return err
			}
			input := strings.Join(args, " ")

			res, err := lookup.RunLimited(input, d, a.cfg.Neighbors.MaxRadius)
			if err != nil {
				a.logger.Debug("lookup rejected", zap.String("input", input), zap.Error(err))
				return err
			}

			switch format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			case "table":
				return writeResult(cmd.OutOrStdout(), res)
			default:
				return fmt.Errorf("unknown format %q (want table or json)", format)
			}
		},
	}

	cmd.Flags().IntVarP(&def, "default", "d", 0, "neighbors for numbers given without a count (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table or json")
	return cmd
}

// defaultNeighbors returns the flag value when set, else the configured
// default, and rejects values outside the configured range.
func (a *app) defaultNeighbors(cmd *cobra.Command, flagValue int) (int, error) {
	d := a.cfg.Neighbors.Default
	if cmd.Flags().Changed("default") {
		d = flagValue
	}
	if !a.cfg.Neighbors.Allowed(d) {
		return 0, fmt.Errorf("default neighbors must be between %d and %d, got %d",
			a.cfg.Neighbors.MinDefault, a.cfg.Neighbors.MaxDefault, d)
	}
	return d, nil
}

func writeResult(w io.Writer, res *lookup.Result) error {
	if err := table.WriteTerminal(w, res.Tables()...); err != nil {
		return err
	}

	numbers := make([]int, 0, len(res.Neighbors))
	for n := range res.Neighbors {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	fmt.Fprintln(w)
	for _, n := range numbers {
		fmt.Fprintf(w, "%2d: %s\n", n, joinInts(res.Neighbors[n]))
	}
	fmt.Fprintf(w, "\n%d pockets, %s%% of the wheel\n", len(res.Highlight), res.Coverage.StringFixed(2))
	return nil
}

func newWheelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "wheel",
		Short: "Print the wheel order with pocket colours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, p := range wheel.Pockets() {
				if _, err := fmt.Fprintf(w, "%2d  %2d  %s\n", p.Position, p.Number, p.Color); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var (
		def int
		out string
	)

	cmd := &cobra.Command{
		Use:   "export [input]",
		Short: "Write both tables to an xlsx workbook",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.defaultNeighbors(cmd, def)
			if err != nil {
				return err
			}
			res, err := lookup.RunLimited(strings.Join(args, " "), d, a.cfg.Neighbors.MaxRadius)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := table.WriteXLSX(f, res.Tables()...); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			a.logger.Info("exported", zap.String("path", out), zap.Int("highlighted", len(res.Highlight)))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().IntVarP(&def, "default", "d", 0, "neighbors for numbers given without a count (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "neighbors.xlsx", "output file")
	return cmd
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, " ")
}
