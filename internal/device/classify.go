// internal/device/classify.go
package device

import (
	"strings"

	"github.com/pkg/errors"
)

// Markers the web UI renders. The device exposes no structured status
// field; these HTML fragments are the only signal it offers. They are
// a heuristic contract with the current firmware generations, not a
// stable wire protocol, and live here as constants so a UI change has
// exactly one place to land.
const (
	// MarkerSubmitButton appears on an idle form page.
	MarkerSubmitButton = `<button name="submit" type="submit" value="1"><b>Submit</b>`

	// MarkerCancelButton appears only once a job is actually running.
	MarkerCancelButton = `<button name="submit" type="submit" value="0"><b>Cancel</b>`

	// MarkerWebUIError is the banner the device prints when it refuses
	// the submitted parameters.
	MarkerWebUIError = "ERROR : Web UI Error"
)

// Outcome classifies one submission exchange.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeRejectedByDevice
	OutcomeSubmissionFailed
	OutcomeDeviceNotReady
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeRejectedByDevice:
		return "rejected_by_device"
	case OutcomeSubmissionFailed:
		return "submission_failed"
	case OutcomeDeviceNotReady:
		return "device_not_ready"
	default:
		return "unknown"
	}
}

// Classify decides what happened to a submitted form.
//
// Priority order matters: a cancel button means the job is running
// regardless of anything else on the page; the error banner means the
// device refused the parameters; a still-present submit button means
// the form came back unsubmitted.
func Classify(p Page) (Outcome, error) {
	if p.StatusCode < 200 || p.StatusCode >= 300 {
		return OutcomeSubmissionFailed,
			errors.Errorf("device: submission returned HTTP %d", p.StatusCode)
	}

	switch {
	case strings.Contains(p.Body, MarkerCancelButton):
		return OutcomeSuccess, nil

	case strings.Contains(p.Body, MarkerWebUIError):
		return OutcomeRejectedByDevice,
			errors.New("device: web UI rejected the parameters")

	case strings.Contains(p.Body, MarkerSubmitButton):
		return OutcomeSubmissionFailed,
			errors.New("device: form redisplayed, submission did not start")

	default:
		// Reachable only if the device UI changes. Never swallow it.
		return OutcomeSubmissionFailed,
			errors.New("device: unrecognized response page")
	}
}
