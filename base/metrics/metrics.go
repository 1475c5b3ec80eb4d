package metrics

const (
	TickServiceStepsAppliedH = "The total number of wall-clock steps applied to the rate-scaled clock"
	TickServiceStepsAppliedN = "tickservice_steps_applied"
	TickServiceTicksEmittedH = "The total number of ticks emitted by all tickers"
	TickServiceTicksEmittedN = "tickservice_ticks_emitted"
	TickServiceZeroStepsH    = "The total number of steps that advanced the scaled clock by less than one nanosecond"
	TickServiceZeroStepsN    = "tickservice_zero_steps"

	TickServiceClockSecondsH = "The current scaled clock time since start, in seconds"
	TickServiceClockSecondsN = "tickservice_clock_seconds"
	TickServiceClockRateH    = "The current clock rate"
	TickServiceClockRateN    = "tickservice_clock_rate"
)
