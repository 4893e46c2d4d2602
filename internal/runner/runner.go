// internal/runner/runner.go
package runner

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tamzrod/sip-autorun/internal/config"
	"github.com/tamzrod/sip-autorun/internal/device"
	"github.com/tamzrod/sip-autorun/internal/metrics"
	"github.com/tamzrod/sip-autorun/internal/params"
)

// Submitter is the write side of the device client.
type Submitter interface {
	Submit(ctx context.Context, channel string, form url.Values) (device.Page, error)
}

// Readiness is the device idle probe over a channel group.
type Readiness interface {
	Ready(ctx context.Context, channels []string) bool
}

// notReadyCooldown is how long a busy device gets to finish before the
// single recheck.
const notReadyCooldown = 15 * time.Minute

// Config is the immutable per-campaign setup for the runner.
type Config struct {
	Channels config.ChannelMap
	Params   params.Set
	Fields   params.FieldMapping
	Basename string

	// Cooldown before the readiness recheck. Zero means the default
	// 15 minutes; tests set it short.
	Cooldown time.Duration
}

// Runner drives one measurement cycle across all configured channel
// pairs.
type Runner struct {
	cfg     Config
	client  Submitter
	ready   Readiness
	log     logrus.FieldLogger
	metrics *metrics.Metrics

	now func() time.Time // test seam
}

// New builds a runner with immutable config.
func New(cfg Config, client Submitter, ready Readiness, log logrus.FieldLogger, m *metrics.Metrics) (*Runner, error) {
	if len(cfg.Channels) == 0 {
		return nil, errors.New("runner: channel map required")
	}
	if len(cfg.Fields) == 0 {
		return nil, errors.New("runner: field mapping required")
	}
	if cfg.Basename == "" {
		return nil, errors.New("runner: basename required")
	}
	if cfg.Cooldown == 0 {
		cfg.Cooldown = notReadyCooldown
	}
	return &Runner{
		cfg:     cfg,
		client:  client,
		ready:   ready,
		log:     log,
		metrics: m,
		now:     time.Now,
	}, nil
}

// RunCycle performs one full measurement cycle and reports what
// happened per channel. It never returns an error: a cycle that cannot
// run is a skipped cycle, and the scheduler tries again next interval.
func (r *Runner) RunCycle(ctx context.Context) Report {
	rep := Report{At: r.now()}
	r.metrics.CycleStarted()
	r.log.Info("starting new measurement cycle")

	if !r.checkReadyWithRetry(ctx) {
		r.log.Error("device still not ready, skipping this measurement cycle")
		r.metrics.CycleSkipped()
		rep.Skipped = true
		for _, pair := range r.cfg.Channels {
			rep.Results = append(rep.Results, ChannelResult{
				Stimulus:  pair.Stimulus,
				Responses: pair.Responses,
				Outcome:   device.OutcomeDeviceNotReady,
				Err:       errors.New("runner: device not ready"),
			})
		}
		return rep
	}

	for _, pair := range r.cfg.Channels {
		res := r.submitOne(ctx, pair)
		rep.Results = append(rep.Results, res)
		r.metrics.SubmissionObserved(res.Outcome.String())

		if res.Outcome == device.OutcomeSuccess {
			r.log.Infof("measurement submitted successfully to file %s", res.Filename)
			continue
		}
		// %+v prints the stack pkg/errors captured at the failure site.
		r.log.WithField("channel", pair.Stimulus).
			Errorf("measurement on channel %s failed: %+v", pair.Stimulus, res.Err)
	}

	return rep
}

// checkReadyWithRetry gates the cycle: one check, one cooldown, one
// recheck. A cancelled cooldown counts as not ready so shutdown is not
// delayed by a busy device.
func (r *Runner) checkReadyWithRetry(ctx context.Context) bool {
	all := r.cfg.Channels.AllChannels()

	ok := r.ready.Ready(ctx, all)
	r.metrics.ReadinessChecked(ok)
	if ok {
		return true
	}

	r.log.Infof("device not ready, waiting %s before recheck", r.cfg.Cooldown)
	if err := sleepCtx(ctx, r.cfg.Cooldown); err != nil {
		return false
	}

	ok = r.ready.Ready(ctx, all)
	r.metrics.ReadinessChecked(ok)
	return ok
}

// submitOne builds, posts and classifies a single channel's form.
// Every failure mode ends up in the result; nothing escapes to abort
// sibling channels.
func (r *Runner) submitOne(ctx context.Context, pair config.ChannelPair) ChannelResult {
	res := ChannelResult{Stimulus: pair.Stimulus, Responses: pair.Responses}

	r.log.Infof("measuring stimulus channel %s at response channels %s",
		pair.Stimulus, strings.Join(pair.Responses, ","))

	form, filename, err := params.BuildPayload(
		r.cfg.Params, r.cfg.Fields, pair.Stimulus, pair.Responses, r.cfg.Basename, r.now())
	if err != nil {
		res.Outcome = device.OutcomeSubmissionFailed
		res.Err = errors.Wrap(err, "build payload")
		return res
	}
	res.Filename = filename

	page, err := r.client.Submit(ctx, pair.Stimulus, form)
	if err != nil {
		res.Outcome = device.OutcomeSubmissionFailed
		res.Err = errors.Wrap(err, "submit")
		return res
	}

	res.Outcome, res.Err = device.Classify(page)
	return res
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
