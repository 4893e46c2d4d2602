// cmd/autosip/main.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/tamzrod/sip-autorun/internal/config"
	"github.com/tamzrod/sip-autorun/internal/device"
	"github.com/tamzrod/sip-autorun/internal/metrics"
	"github.com/tamzrod/sip-autorun/internal/params"
	"github.com/tamzrod/sip-autorun/internal/runner"
	"github.com/tamzrod/sip-autorun/internal/schedule"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: autosip <config.yaml>")
		os.Exit(2)
	}

	if err := run(os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "autosip: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath string) error {
	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	config.Normalize(cfg, time.Now())

	version, err := params.ParseVersion(cfg.Device.Version)
	if err != nil {
		return err
	}

	channels, err := config.LoadChannelMap(cfg.Measurement.ChannelsFile)
	if err != nil {
		return err
	}
	if err := config.ValidateChannelMap(channels); err != nil {
		return err
	}

	overrides := map[string]string{}
	if cfg.Measurement.ParamsFile != "" {
		overrides, err = config.LoadParamOverrides(cfg.Measurement.ParamsFile)
		if err != nil {
			return err
		}
	}

	set := params.Defaults().Merge(overrides)
	set["filename"] = cfg.Measurement.Basename

	// --------------------
	// Logging
	// --------------------

	log, closeLog, err := setupLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	log.Infof("parameters are: %v", set)
	log.Infof("channel mapping is: %v", channels)

	// --------------------
	// Credentials (once, before the loop; never re-prompted)
	// --------------------

	var creds *device.Credentials
	if version.RequiresAuth() {
		creds, err = promptCredentials(os.Stdin)
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Metrics (optional)
	// --------------------

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(prometheus.DefaultRegisterer)
		go metrics.Serve(ctx, cfg.Metrics.Listen, log)
	}

	// --------------------
	// Device client + runner
	// --------------------

	timeout := time.Duration(cfg.Device.TimeoutMs) * time.Millisecond
	client := device.NewClient(cfg.Device.IP, timeout, creds)
	checker := device.NewReadinessChecker(client, log)

	r, err := runner.New(runner.Config{
		Channels: channels,
		Params:   set,
		Fields:   version.Fields(),
		Basename: cfg.Measurement.Basename,
	}, client, checker, log, m)
	if err != nil {
		return err
	}

	// --------------------
	// Measurement loop
	// --------------------

	interval, err := schedule.ParseInterval(cfg.Schedule.Interval)
	if err != nil {
		return err
	}
	clock := schedule.NewClock(interval, cfg.Schedule.AlignFullHours)

	next := clock.First()
	for {
		log.Infof("waiting until %s for next measurement", next.UTC().Format(time.RFC3339))
		if err := clock.Wait(ctx, next); err != nil {
			log.Info("shutdown requested, stopping measurement loop")
			return nil
		}

		rep := r.RunCycle(ctx)
		if !rep.Skipped {
			log.Infof("cycle finished: %d submitted, %d failed", rep.Successes(), rep.Failures())
		}
		if ctx.Err() != nil {
			log.Info("shutdown requested, stopping measurement loop")
			return nil
		}

		next = clock.Next(next)
	}
}

// setupLogger writes to console and the campaign log file at once.
func setupLogger(cfg config.LogConfig) (*logrus.Logger, func(), error) {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open log file %s", cfg.File)
	}
	log.SetOutput(io.MultiWriter(os.Stdout, file))

	return log, func() { _ = file.Close() }, nil
}

// promptCredentials reads the device login once from the controlling
// terminal. The password is read without echo when stdin is a terminal.
func promptCredentials(stdin *os.File) (*device.Credentials, error) {
	fmt.Println("Please enter your authentication data for the SIP server.")

	fmt.Print("Login name: ")
	reader := bufio.NewReader(stdin)
	name, err := reader.ReadString('\n')
	if err != nil {
		return nil, errors.Wrap(err, "read login name")
	}

	fmt.Print("Password: ")
	var password string
	if term.IsTerminal(int(stdin.Fd())) {
		raw, err := term.ReadPassword(int(stdin.Fd()))
		fmt.Println()
		if err != nil {
			return nil, errors.Wrap(err, "read password")
		}
		password = string(raw)
	} else {
		raw, err := reader.ReadString('\n')
		if err != nil {
			return nil, errors.Wrap(err, "read password")
		}
		password = strings.TrimRight(raw, "\r\n")
	}

	return &device.Credentials{
		Username: strings.TrimSpace(name),
		Password: password,
	}, nil
}
