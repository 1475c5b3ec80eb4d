// Package benchmark measures how promptly a polling loop driven by the
// local clock observes the ticks of a FrequencyTicker.
package benchmark

import (
	"os"

	"github.com/HdrHistogram/hdrhistogram-go"
	"go.uber.org/zap"

	"example.com/game-time/base/timebase"
	"example.com/game-time/core/tick"
	"example.com/game-time/core/timeval"
	"example.com/game-time/driver/clock"
)

// RunTickerBenchmark polls the local clock in a tight loop, feeds the
// elapsed spans into a ticker at the given frequency, and records for
// every tick the lateness between the stamp the tick carries and the
// stamp of the clock reading that surfaced it. Prints an hdr histogram
// of the lateness in nanoseconds once the requested number of ticks
// has been observed.
func RunTickerBenchmark(log *zap.Logger, lclk timebase.LocalClock, freq tick.Frequency, numTicks int) {
	hg := hdrhistogram.New(1, 50_000_000, 5)

	clk := clock.NewClock(lclk)
	ticker := freq.Ticker(clk.Now())

	observed := 0
	for observed < numTicks {
		cs := clk.Step()
		ticker.WithTicks(cs.Step, func(tk timeval.ClockStep) {
			if observed == numTicks {
				return
			}
			lateness := cs.Now.Sub(tk.Now)
			err := hg.RecordValue(lateness.Nanos())
			if err != nil {
				log.Info("lateness out of histogram range",
					zap.Stringer("lateness", lateness))
			}
			observed++
		})
	}

	log.Info("ticker benchmark done",
		zap.Stringer("frequency", freq),
		zap.Int("ticks", observed),
		zap.Stringer("elapsed", clk.Now().SinceStart()),
	)
	hg.PercentilesPrint(os.Stdout, 1, 1.0)
}
