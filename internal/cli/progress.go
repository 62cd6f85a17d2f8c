package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter renders generation phases as terminal progress bars.
type CLIProgressReporter struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a progress reporter for interactive runs.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{quiet: quiet}
}

func (c *CLIProgressReporter) StartPhase(name string, total int) {
	if c.quiet || total == 0 {
		return
	}
	c.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(name),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (c *CLIProgressReporter) Advance() {
	if c.bar != nil {
		c.bar.Add(1)
	}
}

func (c *CLIProgressReporter) FinishPhase() {
	if c.bar != nil {
		c.bar.Finish()
		c.bar = nil
	}
}
