package ui

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/javiermolinar/bayboard/internal/availability"
	"github.com/javiermolinar/bayboard/internal/board"
	"github.com/javiermolinar/bayboard/internal/diag"
)

// session is a loaded board plus its logger.
type session struct {
	board     *board.Board
	logger    *log.Logger
	collector *diag.Collector
	close     func() error
}

// hooks are the board callbacks a command wants to observe.
type hooks struct {
	onTiming board.TimingFunc
	onAction board.ActionFunc
	onCreate board.CreateFunc
}

func (a *App) path() string {
	if a.boardPath != "" {
		return a.boardPath
	}
	return a.config.Board.Path
}

// openSession loads the board file and wires diagnostics into the log.
func (a *App) openSession(h *hooks) (*session, error) {
	tl, err := a.config.Timeline()
	if err != nil {
		return nil, fmt.Errorf("timeline config: %w", err)
	}

	logger, closeLog, err := diag.New(diag.Options{
		Debug: a.debug || a.config.Log.Debug,
		Path:  a.config.Log.Path,
		Level: a.logLevel(),
	})
	if err != nil {
		return nil, err
	}

	layout, tasks, err := board.LoadFile(a.path())
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("loading board: %w (run `bayboard init` to create one)", err)
	}

	collector := &diag.Collector{Next: diag.Availability{Logger: logger}}
	opts := board.Options{
		Config:      tl,
		Layout:      layout,
		Tasks:       tasks,
		Diagnostics: collector,
		Logger:      logger,
	}
	if h != nil {
		opts.OnTiming = h.onTiming
		opts.OnAction = h.onAction
		opts.OnCreate = h.onCreate
	}
	b, err := board.New(opts)
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	logger.WithFields(log.Fields{
		"board": a.path(),
		"tasks": len(tasks),
	}).Info("board loaded")

	return &session{board: b, logger: logger, collector: collector, close: closeLog}, nil
}

func (a *App) logLevel() string {
	if a.debug {
		return log.DebugLevel.String()
	}
	return a.config.Log.Level
}

// issues returns the availability problems seen so far.
func (s *session) issues() []availability.Issue {
	return s.collector.Issues()
}
