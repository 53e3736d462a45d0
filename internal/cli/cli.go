package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/babarot/xcom/internal/audit"
	"github.com/babarot/xcom/internal/config"
	"github.com/babarot/xcom/internal/env"
	"github.com/babarot/xcom/internal/utils/debug"
	"github.com/babarot/xcom/internal/utils/log"
	"github.com/muesli/termenv"
	"github.com/rs/xid"
)

// ErrUsage is returned after the usage line has already been printed
var ErrUsage = errors.New("invalid usage")

type MetaOption struct {
	Version bool   `short:"v" long:"version" description:"Show version"`
	Config  string `long:"config" description:"Path to config file" default:""`
	Debug   string `long:"debug" description:"View debug logs (default: \"full\")" optional-value:"full" optional:"yes" choice:"full" choice:"live"`
}

type CLI struct {
	version Version
	config  config.Config
	runID   string
	audit   *audit.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// auditPath overrides the default xcom.log location
	auditPath string
	logger    io.Closer
}

var runID = sync.OnceValue(func() string {
	id := xid.New().String()
	return id
})

func newCLI(v Version) *CLI {
	return &CLI{
		version: v,
		runID:   runID(),
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
}

// setup loads the config and installs the default logger. Call close
// when the command returns.
func (c *CLI) setup(meta MetaOption) error {
	// config.Parse logs through the default logger, which is not set up yet
	slog.SetDefault(log.New(log.UseOutput(io.Discard)))

	cfg, err := config.Parse(meta.Config)
	if err != nil {
		return err
	}
	c.config = cfg

	w, err := c.logWriter(cfg.Logging)
	if err != nil {
		return err
	}
	log.New(
		log.UseOutput(w),
		log.UseLevel(log.ParseLevel(cfg.Logging.Level)),
		log.UseReportCaller(true),
		log.UseReportTimestamp(true),
		log.UseTimeFormat(time.Kitchen),
		// https://github.com/charmbracelet/log/issues/35
		log.UseColorProfile(termenv.TrueColor),
		log.With("run_id", c.runID),
		log.AsDefault(),
	)
	slog.Debug("main function started",
		"app", c.version.AppName,
		"version", c.version.Version,
		"revision", c.version.Revision,
		"buildDate", c.version.BuildDate)

	c.audit = audit.New(c.auditPath, audit.Disabled(!cfg.Core.Audit.Enabled))
	return nil
}

func (c *CLI) logWriter(cfg config.Logging) (io.Writer, error) {
	if !cfg.Enabled {
		return io.Discard, nil
	}
	w, err := log.NewRotateWriter(env.XCOM_LOG_PATH, cfg.Rotation)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	c.logger = w
	return w, nil
}

func (c *CLI) close() {
	slog.Debug("main function finished")
	if c.logger != nil {
		c.logger.Close()
	}
}

// debugLogs reports whether --debug was given and, if so, shows the log
func (c *CLI) debugLogs(meta MetaOption) (bool, error) {
	switch meta.Debug {
	case "live":
		return true, debug.Logs(c.stdout, env.XCOM_LOG_PATH, c.config.Logging, true)
	case "full":
		return true, debug.Logs(c.stdout, env.XCOM_LOG_PATH, c.config.Logging, false)
	}
	return false, nil
}

func (c *CLI) signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
