package almanac

import (
	"context"
	"fmt"
	"runtime"

	"bazi/internal/engine"
	"bazi/internal/sexagenary"

	"golang.org/x/sync/errgroup"
)

// Range the astronomy and ΔT fits are trusted for.
const (
	MinYear = 1800
	MaxYear = 2199
)

// Padding is added before and after the requested years so that scans for
// the nearest month-opening term never run off the table.
const paddingDays = 31

// Build computes the date mappings for every civil date from January 1st of
// from to December 31st of to, plus a month on either side.
func Build(ctx context.Context, from, to int) (engine.Table, error) {
	if from > to {
		return nil, fmt.Errorf("invalid range %d-%d", from, to)
	}
	if from-1 < MinYear || to+1 > MaxYear {
		return nil, fmt.Errorf("range %d-%d outside supported %d-%d", from, to, MinYear+1, MaxYear-1)
	}

	// 1. Solar terms, one civil year per goroutine.
	n := to - from + 3
	perYear := make([][]TermEvent, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ev, err := Terms(from - 1 + i)
			if err != nil {
				return err
			}
			perYear[i] = ev
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("computing solar terms: %w", err)
	}

	events := make([]TermEvent, 0, n*NumTerms)
	for _, ev := range perYear {
		events = append(events, ev...)
	}

	// 2. Walk the days, carrying the month opened by the last jie term.
	start := JDN(from, 1, 1) - paddingDays
	end := JDN(to, 12, 31) + paddingDays
	table := engine.Table{}
	month := -1
	next := 0
	for jdn := start; jdn <= end; jdn++ {
		if jdn%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		for next < len(events) && eventJDN(events[next]) < jdn {
			if events[next].Opens() {
				month = monthPosition(events[next])
			}
			next++
		}
		y, m, d := FromJDN(jdn)
		if month < 0 {
			return nil, fmt.Errorf("no month-opening term before %d-%02d-%02d", y, m, d)
		}

		e := engine.Entry{Day: DayCyclePosition(y, m, d), Month: month}
		if next < len(events) && eventJDN(events[next]) == jdn {
			ev := events[next]
			_, _, _, minute := ev.date()
			e.Term = &engine.Term{Index: ev.Index, Minute: minute}
		}
		table.Set(y, m, d, e)
	}
	return table, nil
}

func eventJDN(ev TermEvent) int {
	y, m, d, _ := ev.date()
	return JDN(y, m, d)
}

func monthPosition(ev TermEvent) int {
	return sexagenary.MonthPillar(ev.SolarYear, sexagenary.Branch(ev.MonthBranch())).Position()
}
