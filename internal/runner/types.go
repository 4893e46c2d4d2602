// internal/runner/types.go
package runner

import (
	"time"

	"github.com/tamzrod/sip-autorun/internal/device"
)

// ChannelResult is the explicit per-channel outcome of one cycle.
// Results are values, not control flow: the cycle records one for every
// stimulus channel and keeps going.
type ChannelResult struct {
	Stimulus  string
	Responses []string
	Outcome   device.Outcome
	Filename  string // set on success; the device names its result files this
	Err       error  // non-nil for every non-success outcome
}

// Report summarizes one measurement cycle.
type Report struct {
	At      time.Time
	Skipped bool // device never became ready, nothing was submitted
	Results []ChannelResult
}

// Successes counts channels whose submission started a job.
func (r Report) Successes() int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == device.OutcomeSuccess {
			n++
		}
	}
	return n
}

// Failures counts channels that did not start a job this cycle.
func (r Report) Failures() int {
	return len(r.Results) - r.Successes()
}
