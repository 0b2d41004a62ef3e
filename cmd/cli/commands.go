package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"goshuffle/adapters/excel"
	"goshuffle/adapters/jsonseq"
	"goshuffle/app"
	"goshuffle/internal/analysis"
	"goshuffle/internal/report"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

type loader func() (*services, error)

// inputFlags selects where the sequence to shuffle comes from
type inputFlags struct {
	file   string
	sheet  string
	column int
	header bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.file, "file", "", "Read items from one column of an .xlsx or .csv file")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "Sheet to read (default: first sheet)")
	cmd.Flags().IntVar(&f.column, "column", 0, "Zero-based column index to read")
	cmd.Flags().BoolVar(&f.header, "header", false, "Skip the first row of the file")
}

// readItems returns the items to shuffle and whether they are raw JSON
// values. Arguments win over --file, which wins over stdin.
func (f *inputFlags) readItems(args []string, stdin io.Reader) ([]string, bool, error) {
	if len(args) > 0 {
		return args, false, nil
	}
	if f.file != "" {
		items, err := excel.NewDataReader(f.file, f.sheet, f.column, f.header).ReadSequence()
		return items, false, err
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read stdin: %w", err)
	}
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") && gjson.Valid(trimmed) {
		items, err := jsonseq.Parse([]byte(trimmed))
		return items, true, err
	}
	return jsonseq.Tokens(trimmed), false, nil
}

func writeItems(w io.Writer, items []string, asJSON bool) {
	if asJSON {
		fmt.Fprintln(w, string(jsonseq.Encode(items)))
		return
	}
	fmt.Fprintln(w, strings.Join(items, " "))
}

func runShuffle(cmd *cobra.Command, load loader, in *inputFlags, args []string, strategy string, repeats *int, seed int64) error {
	svc, err := load()
	if err != nil {
		return err
	}

	items, asJSON, err := in.readItems(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	req := app.ShuffleRequest{Items: items, Strategy: strategy, Repeats: repeats}
	if cmd.Flags().Changed("seed") {
		req.Seed = &seed
	}
	res, err := svc.shuffles.Shuffle(cmd.Context(), req)
	if err != nil {
		return err
	}
	writeItems(cmd.OutOrStdout(), res.Items, asJSON)
	return nil
}

func newShuffleCmd(load loader) *cobra.Command {
	var strategy string
	var seed int64
	var in inputFlags

	cmd := &cobra.Command{
		Use:   "shuffle [items...]",
		Short: "Shuffle items once",
		Long: `Shuffle items once with the given strategy (default: the configured default).

Items come from the arguments, from --file, or from stdin as a JSON array
or whitespace/comma separated text.

Example: goshuffle shuffle --strategy faro:out 1 2 3 4 5 6 7 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShuffle(cmd, load, &in, args, strategy, nil, seed)
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "", "Strategy: random|gsr|faro:in|faro:out")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for a reproducible shuffle")
	in.register(cmd)
	return cmd
}

func newNShuffleCmd(load loader) *cobra.Command {
	var strategy string
	var seed int64
	var in inputFlags

	cmd := &cobra.Command{
		Use:   "nshuffle [n] [items...]",
		Short: "Shuffle items n times in sequence",
		Long: `Apply a strategy n times in sequence. n = 0 leaves the items unchanged.

Example: goshuffle nshuffle 3 --strategy faro:in 1 2 3 4 5 6 7 8`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid repeat count %q: %w", args[0], err)
			}
			return runShuffle(cmd, load, &in, args[1:], strategy, &n, seed)
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "", "Strategy: random|gsr|faro:in|faro:out")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for a reproducible shuffle")
	in.register(cmd)
	return cmd
}

func newSimulateCmd(load loader) *cobra.Command {
	var req app.SimulationRequest
	var repeats int
	var seed int64
	var format string
	var xlsxPath string

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run shuffle trials and compare them with the theoretical distribution",
		Long: `Shuffle an identity deck many times and report rising sequences,
displacement and, for decks of up to 8 cards, a chi-square fit against the
exact distribution of the strategy.

Example: goshuffle simulate --strategy gsr --deck 52 --repeats 7 --trials 20000 --xlsx gsr.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("repeats") {
				req.Repeats = &repeats
			}
			if cmd.Flags().Changed("seed") {
				req.Seed = &seed
			}

			res, err := svc.simulations.Simulate(cmd.Context(), req)
			if err != nil {
				return err
			}

			if xlsxPath != "" {
				if err := excel.ExportSimulation(xlsxPath, res); err != nil {
					return err
				}
				svc.logger.Info("wrote %s", xlsxPath)
			}
			return writeSimulation(cmd.OutOrStdout(), res, format)
		},
	}

	cmd.Flags().StringVar(&req.Strategy, "strategy", "", "Strategy: random|gsr|faro:in|faro:out")
	cmd.Flags().IntVar(&req.DeckSize, "deck", 0, "Deck size (default SHUFFLE_DECK_SIZE)")
	cmd.Flags().IntVar(&repeats, "repeats", 1, "Shuffles applied per trial")
	cmd.Flags().IntVar(&req.Trials, "trials", 0, "Number of trials (default SHUFFLE_TRIALS)")
	cmd.Flags().IntVar(&req.Workers, "workers", 0, "Parallel workers (default SHUFFLE_WORKERS)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Base seed for reproducible runs")
	cmd.Flags().Float64Var(&req.Alpha, "alpha", 0, "Significance level (default SHUFFLE_ALPHA)")
	cmd.Flags().StringVar(&format, "format", "markdown", "Output format: markdown|json|html")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also export the result to this workbook")
	return cmd
}

func writeSimulation(w io.Writer, res *analysis.SimulationResult, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "html":
		_, err := w.Write(report.HTML(res))
		return err
	case "markdown", "md":
		_, err := io.WriteString(w, report.Markdown(res))
		return err
	}
	return fmt.Errorf("unknown format %q (use markdown, json or html)", format)
}

func newStrategiesCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the built-in strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := load()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tRANDOMIZED\tIN-PLACE\tCOPY\tDEFAULT")
			for _, info := range svc.shuffles.Strategies() {
				fmt.Fprintf(tw, "%s\t%t\t%t\t%t\t%s\n", info.Name, info.Randomized, info.InPlace, info.Copy, marker(info.Default))
			}
			return tw.Flush()
		},
	}
}

func marker(b bool) string {
	if b {
		return "*"
	}
	return ""
}

func newDefaultCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "default",
		Short: "Print the default strategy after configuration is applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := load()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), svc.shuffles.Default().Name())
			return nil
		},
	}
}

func newVariationCmd() *cobra.Command {
	var deck int
	var maxRiffles int

	cmd := &cobra.Command{
		Use:   "variation",
		Short: "Print the distance from uniform after k riffle shuffles",
		Long: `Print the exact total variation distance between k Gilbert-Shannon-Reeds
riffles and a uniform shuffle, for k = 1..max.

Example: goshuffle variation --deck 52 --max 12`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if deck < 1 || maxRiffles < 1 {
				return fmt.Errorf("deck and max must be positive")
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RIFFLES\tDISTANCE")
			for k := 1; k <= maxRiffles; k++ {
				fmt.Fprintf(tw, "%d\t%.4f\n", k, analysis.RiffleVariationDistance(deck, k))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&deck, "deck", 52, "Deck size")
	cmd.Flags().IntVar(&maxRiffles, "max", 10, "Largest number of riffles to report")
	return cmd
}
