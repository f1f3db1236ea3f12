// Package diag sets up the structured debug log and routes engine
// diagnostics into it.
package diag

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/javiermolinar/bayboard/internal/availability"
)

// Options selects where and how much to log.
type Options struct {
	Debug bool
	Path  string
	Level string
}

// New returns a JSON logger writing to opts.Path when Debug is set and a
// discarding logger otherwise. The returned close function is never nil.
func New(opts Options) (*log.Logger, func() error, error) {
	if !opts.Debug {
		return Discard(), func() error { return nil }, nil
	}

	level := log.InfoLevel
	if opts.Level != "" {
		l, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
		level = l
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("creating debug log: %w", err)
	}

	logger := newLogger(f, level)
	logger.WithField("log_file", opts.Path).Info("debug log started")
	closeFn := func() error {
		logger.Info("debug log closed")
		return f.Close()
	}
	return logger, closeFn, nil
}

// Discard returns a logger that writes nowhere.
func Discard() *log.Logger {
	return newLogger(io.Discard, log.PanicLevel)
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	logger := log.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	logger.SetFormatter(&log.JSONFormatter{TimestampFormat: "15:04:05.000"})
	return logger
}

// Availability reports inconsistent work days as warnings.
type Availability struct {
	Logger log.FieldLogger
}

// InconsistentAvailability implements availability.Diagnostics.
func (a Availability) InconsistentAvailability(i availability.Issue) {
	if a.Logger == nil {
		return
	}
	a.Logger.WithFields(log.Fields{
		"event":    "inconsistent_availability",
		"resource": i.ResourceID,
		"date":     i.Date.Format(time.DateOnly),
	}).Warn(i.Reason)
}

// Collector keeps every reported issue, deduplicated, and forwards it to Next.
type Collector struct {
	Next   availability.Diagnostics
	issues []availability.Issue
	seen   map[string]bool
}

// InconsistentAvailability implements availability.Diagnostics.
func (c *Collector) InconsistentAvailability(i availability.Issue) {
	key := i.ResourceID + "|" + i.Date.Format(time.DateOnly) + "|" + i.Reason
	if c.seen == nil {
		c.seen = make(map[string]bool)
	}
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	c.issues = append(c.issues, i)
	if c.Next != nil {
		c.Next.InconsistentAvailability(i)
	}
}

// Issues returns the collected issues in report order.
func (c *Collector) Issues() []availability.Issue {
	return c.issues
}
