package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"vgsales/internal/config"
	"vgsales/internal/engine"
	"vgsales/internal/export"
	"vgsales/internal/logging"
	"vgsales/internal/models"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type rootOptions struct {
	dataFile string
	logLevel string
	noWrap   bool
}

// loadService reads configuration, applies flag overrides and loads the
// dataset.
func (o *rootOptions) loadService(errOut io.Writer) (*engine.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.dataFile != "" {
		cfg.DataFile = o.dataFile
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.noWrap {
		cfg.SeriesWrapAround = false
	}
	if _, err := logging.New("vgsales", cfg.LogLevel, errOut); err != nil {
		return nil, err
	}

	ds, err := engine.Load(cfg.DataFile, engine.TrimOptions{
		PublisherThreshold: cfg.PublisherThreshold,
		PlatformThreshold:  cfg.PlatformThreshold,
	})
	if err != nil {
		return nil, err
	}
	return engine.NewService(ds, nil, engine.Options{
		Series: engine.SeriesOptions{WrapAround: cfg.SeriesWrapAround},
		TopK:   cfg.TopK,
	}), nil
}

type windowFlags struct {
	from, to, k int
}

func (w *windowFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&w.from, "from", 0, "first release year (default: earliest in data)")
	cmd.Flags().IntVar(&w.to, "to", 0, "last release year (default: latest in data)")
	cmd.Flags().IntVarP(&w.k, "k", "k", 0, "number of groups per region (default from VGSALES_TOP_K)")
}

func (w *windowFlags) resolve(cmd *cobra.Command, svc *engine.Service) (from, to, k int, err error) {
	bounds, err := svc.YearBounds()
	if err != nil {
		return 0, 0, 0, err
	}
	from, to, k = bounds.Min, bounds.Max, svc.DefaultK()
	if cmd.Flags().Changed("from") {
		from = w.from
	}
	if cmd.Flags().Changed("to") {
		to = w.to
	}
	if cmd.Flags().Changed("k") {
		k = w.k
	}
	return from, to, k, nil
}

func newPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the dataset shape and per-region sales statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.loadService(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			s, err := svc.Summary()
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), s, svc.Dataset().Dropped)
			return nil
		},
	}
}

func printSummary(w io.Writer, s models.DatasetSummary, dropped int) {
	p := newPrinter()
	// Years are printed with fmt so they do not pick up grouping separators.
	fmt.Fprintf(w, "Dataset shape: (%d, %d), years %d-%d, %d records dropped\n\n", s.Rows, s.Columns, s.Years.Min, s.Years.Max, dropped)
	p.Fprintf(w, "%-12s %10s %10s %8s %8s %8s %8s %8s\n", "Column", "Count", "Sum", "Mean", "Std", "Min", "Median", "Max")
	for _, c := range s.Sales {
		p.Fprintf(w, "%-12s %10d %10.2f %8.3f %8.3f %8.2f %8.2f %8.2f\n", c.Column, c.Count, c.Sum, c.Mean, c.Std, c.Min, c.Median, c.Max)
	}
}

func newTopCmd(opts *rootOptions) *cobra.Command {
	var (
		window  windowFlags
		groupBy string
		columns string
		count   bool
	)
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Rank groups by summed sales in each region",
		Long: `Rank groups by summed sales in each region over a year range.

Example: vgsales top --by Publisher --count --from 2000 --to 2010 -k 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.loadService(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			from, to, k, err := window.resolve(cmd, svc)
			if err != nil {
				return err
			}
			by, err := engine.ParseGroupField(groupBy)
			if err != nil {
				return err
			}
			cols := engine.SalesColumns
			if columns != "" {
				cols = nil
				for _, c := range strings.Split(columns, ",") {
					f, err := engine.ParseSalesColumn(strings.TrimSpace(c))
					if err != nil {
						return err
					}
					cols = append(cols, f)
				}
			}
			res, err := svc.Top(engine.TopKRequest{GroupBy: by, Columns: cols, K: k, WithCount: count}, from, to)
			if err != nil {
				return err
			}
			printTop(cmd.OutOrStdout(), cols, res, count)
			return nil
		},
	}
	window.register(cmd)
	cmd.Flags().StringVar(&groupBy, "by", string(engine.FieldName), "group key: Name|Platform|Year|Genre|Publisher")
	cmd.Flags().StringVar(&columns, "columns", "", "comma-separated sales columns (default: all regions)")
	cmd.Flags().BoolVar(&count, "count", false, "also report the number of rows per group")
	return cmd
}

func printTop(w io.Writer, cols []engine.Field, res models.TopResult, count bool) {
	p := newPrinter()
	for _, col := range cols {
		p.Fprintf(w, "== %s\n", col)
		for i, it := range res[string(col)] {
			if count {
				p.Fprintf(w, "%3d. %-50s %10.2f %6d\n", i+1, it.Key, it.Value, it.Count)
			} else {
				p.Fprintf(w, "%3d. %-50s %10.2f\n", i+1, it.Key, it.Value)
			}
		}
		fmt.Fprintln(w)
	}
}

func newSeriesCmd(opts *rootOptions) *cobra.Command {
	var members bool
	cmd := &cobra.Command{
		Use:   "series [name]",
		Short: "List popular inferred game series, or the games of one series",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.loadService(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			p := newPrinter()
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				rows, err := svc.SeriesRows(args[0])
				if err != nil {
					return err
				}
				for _, r := range rows {
					p.Fprintf(out, "%-50s %-6s %4s %8.2f\n", r.Name, r.Platform, strconv.Itoa(r.Year), r.GlobalSales)
				}
				return nil
			}

			inf, err := svc.Series()
			if err != nil {
				return err
			}
			for _, it := range inf.PopularItems(members) {
				p.Fprintf(out, "%-40s %6d\n", it.Name, it.Occurrences)
				for _, m := range it.Members {
					p.Fprintf(out, "    %s\n", m)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&members, "members", false, "print member titles of each series")
	cmd.Flags().BoolVar(&opts.noWrap, "no-wrap", false, "do not compare the first sorted title with the last")
	return cmd
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		window windowFlags
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write summary, top-K tables and series to an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.loadService(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			from, to, k, err := window.resolve(cmd, svc)
			if err != nil {
				return err
			}
			if err := export.Save(out, svc, from, to, k); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	window.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "vgsales.xlsx", "output workbook path")
	return cmd
}
