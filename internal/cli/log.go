// Package cli implements the iconfinder command-line interface.
//
// Commands browse the collections of a provider, show and filter one icon
// set, search across sets, resolve icons with customisations, draw alias
// graphs, manage the response cache and run the HTTP API. The CLI is built
// on cobra; configuration comes from the config file and ICONFINDER_*
// environment variables, and flags override both.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// installs the observability log hooks so loads, cache hits and HTTP
// requests are traced. Loggers are passed through context.Context.
package cli

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at level. Timestamps are
// formatted as "HH:MM:SS.ms". format is "text", "json" or "logfmt".
func newLogger(w io.Writer, level log.Level, format string) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
	switch strings.ToLower(format) {
	case "json":
		l.SetFormatter(log.JSONFormatter)
	case "logfmt":
		l.SetFormatter(log.LogfmtFormatter)
	}
	return l
}

// parseLevel maps a level name to a log level, defaulting to info.
func parseLevel(s string) log.Level {
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// progress logs completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Loaded mdi (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
