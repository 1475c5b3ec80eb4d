// Driver for quick experiments

package main

import (
	"go.uber.org/zap"

	"example.com/game-time/core/rate"
	"example.com/game-time/core/tick"
	"example.com/game-time/core/timeval"
)

func runX() {
	initLogger(true /* verbose */)

	c := rate.New()
	c.SetRateRatio(1, 2)
	ticker := c.Ticker(tick.FromHz(3))
	log.Debug("composed ticker", zap.Stringer("frequency", ticker.Frequency()))

	for i := 0; i < 8; i++ {
		ticker.WithTicks(250*timeval.Millisecond, func(tk timeval.ClockStep) {
			log.Debug("tick", zap.Stringer("at", tk.Now))
		})
	}
}
