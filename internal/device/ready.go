// internal/device/ready.go
package device

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

// ReadinessChecker probes channel web UIs for an idle form page.
type ReadinessChecker struct {
	client PageFetcher
	log    logrus.FieldLogger
}

// NewReadinessChecker builds a checker over the given fetcher.
func NewReadinessChecker(client PageFetcher, log logrus.FieldLogger) *ReadinessChecker {
	return &ReadinessChecker{client: client, log: log}
}

// Ready reports whether every listed channel shows an idle submit form.
// Fails closed: one unready channel blocks the whole group. Transport
// errors are logged and reported as not ready, never returned; they are
// an expected failure mode of a device that reboots under us.
func (r *ReadinessChecker) Ready(ctx context.Context, channels []string) bool {
	for _, ch := range channels {
		page, err := r.client.Fetch(ctx, ch)
		if err != nil {
			r.log.WithField("channel", ch).
				Warnf("could not connect to device (the IP changes at device reboot): %v", err)
			return false
		}
		if page.StatusCode < 200 || page.StatusCode >= 300 {
			r.log.WithField("channel", ch).
				Errorf("device returned HTTP %d during readiness check", page.StatusCode)
			return false
		}
		if !strings.Contains(page.Body, MarkerSubmitButton) {
			r.log.WithField("channel", ch).
				Error("no submit button on device page, it may still be busy")
			return false
		}
	}
	return true
}
