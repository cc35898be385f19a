package main

import (
	"context"
	"fmt"

	"bazi/internal/almanac"
	"bazi/internal/bazi"
	"bazi/internal/engine"
	"bazi/internal/render"

	"github.com/araddon/dateparse"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type chartOptions struct {
	date    string
	hour    int
	minute  int
	gender  string
	dataset string
	locale  string
	asJSON  bool
	lateRat bool
}

func (a *app) chartCmd() *cobra.Command {
	var o chartOptions
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Print the four pillars for a birth moment",
		Example: `  bazi chart --date 1990-05-10 --hour 12 --gender male
  bazi chart --date "May 10 1990 12:30" --gender f --locale zh`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChart(cmd, o)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.date, "date", "d", "", "birth date, optionally with time of day, China Standard Time")
	f.IntVar(&o.hour, "hour", -1, "hour 0-23 (default: from --date)")
	f.IntVar(&o.minute, "minute", -1, "minute 0-59 (default: from --date)")
	f.StringVarP(&o.gender, "gender", "g", "", "male or female")
	f.StringVar(&o.dataset, "dataset", "", "mapping table file (default: computed for the birth year)")
	f.StringVar(&o.locale, "locale", "en_US", "locale of the birth date line")
	f.BoolVar(&o.asJSON, "json", false, "print the full result as JSON")
	f.BoolVar(&o.lateRat, "late-rat", false, "births at 23:xx take the next day's pillar")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("gender")
	return cmd
}

func (a *app) runChart(cmd *cobra.Command, o chartOptions) error {
	t, err := dateparse.ParseIn(o.date, almanac.ChinaStandardTime)
	if err != nil {
		return fmt.Errorf("date %q: %w", o.date, err)
	}
	gender, err := bazi.ParseGender(o.gender)
	if err != nil {
		return err
	}
	in := bazi.Input{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Gender: gender,
	}
	if o.hour >= 0 {
		in.Hour = o.hour
	}
	if o.minute >= 0 {
		in.Minute = o.minute
	}

	cache := a.mappingCache(cmd.Context(), o.dataset, in.Year)
	res, err := bazi.New(cache, bazi.WithLateRatRollover(o.lateRat)).Calculate(in)
	if err != nil {
		return err
	}
	a.logger.Debug("chart calculated", zap.String("chart", res.Display), zap.Any("stats", cache.Stats()))

	out := cmd.OutOrStdout()
	if o.asJSON {
		b, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	}
	return render.Text(out, res, render.ParseLocale(o.locale), render.DefaultStyles())
}

// mappingCache reads path when given; otherwise it computes the table for
// the one year around the birth date.
func (a *app) mappingCache(ctx context.Context, path string, year int) *engine.Cache {
	if path != "" {
		return engine.NewCache(engine.FileSource{Path: path})
	}
	return engine.NewCache(engine.SourceFunc(func() (engine.Table, error) {
		a.logger.Debug("computing mappings", zap.Int("year", year))
		return almanac.Build(ctx, year, year)
	}))
}
