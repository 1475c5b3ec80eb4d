package timeval

import "fmt"

// ClockStep is the result of advancing a clock or ticker: the new
// "now" and the span covered since the previous step.
type ClockStep struct {
	Now  TimeStamp
	Step TimeSpan
}

func (c ClockStep) String() string {
	return fmt.Sprintf("%s (+%s)", c.Now, c.Step)
}
