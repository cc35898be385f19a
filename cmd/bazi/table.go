package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"bazi/internal/almanac"
	"bazi/internal/bazi"
	"bazi/internal/engine"
	"bazi/internal/sexagenary"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) tableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Build or inspect the date mapping table",
	}
	cmd.AddCommand(a.tableBuildCmd(), a.tableLookupCmd())
	return cmd
}

func (a *app) tableBuildCmd() *cobra.Command {
	var (
		from, to int
		out      string
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compute the mapping table from the solar ephemeris",
		Long: `Computes day pillars, month pillars and solar term times for every date
from January 1 of --from to December 31 of --to, plus a month of margin on
both sides, and writes the table as JSON. A .gz or .zst suffix on --out
compresses it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t0 := time.Now()
			t, err := almanac.Build(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return err
			}
			if err := engine.WriteFile(out, t); err != nil {
				return err
			}
			a.logger.Info("table written",
				zap.String("path", out),
				zap.Int("dates", t.Len()),
				zap.Duration("took", time.Since(t0)))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d dates (%d-%d) to %s\n", t.Len(), from, to, out)
			return err
		},
	}
	f := cmd.Flags()
	f.IntVar(&from, "from", bazi.DefaultMinYear, "first civil year")
	f.IntVar(&to, "to", bazi.DefaultMaxYear, "last civil year")
	f.StringVarP(&out, "out", "o", "data/mappings.json.zst", "output file")
	return cmd
}

func (a *app) tableLookupCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "lookup DATE...",
		Short: "Print the table entries for dates (YYYY-MM-DD)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache := engine.NewCache(engine.FileSource{Path: path})
			out := cmd.OutOrStdout()
			for _, arg := range args {
				y, m, d, err := engine.ParseKey(arg)
				if err != nil {
					return err
				}
				e, err := cache.Mapping(y, m, d)
				if err != nil {
					return err
				}
				line := fmt.Sprintf("%04d-%02d-%02d  day %s  month %s",
					y, m, d, sexagenary.FromCyclePosition(e.Day), sexagenary.FromCyclePosition(e.Month))
				if e.Term != nil {
					line += fmt.Sprintf("  %s %02d:%02d", almanac.TermName(e.Term.Index), e.Term.Minute/60, e.Term.Minute%60)
					if e.Term.Opens() {
						line += fmt.Sprintf(" -> %s", sexagenary.FromCyclePosition(e.MonthAt(e.Term.Minute)))
					}
				}
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "dataset", "data/mappings.json.zst", "mapping table file")
	return cmd
}

func (a *app) termsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "terms YEAR",
		Short: "List the 24 solar terms of a civil year in China Standard Time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("year %q: %w", args[0], err)
			}
			terms, err := almanac.Terms(year)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, t := range terms {
				mark := " "
				if t.Opens() {
					mark = "*"
				}
				if _, err := fmt.Fprintf(out, "%s %s  %s\n", mark, t.Name(), t.Time.In(almanac.ChinaStandardTime).Format("2006-01-02 15:04")); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
