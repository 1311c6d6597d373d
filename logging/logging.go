// Package logging hands out the loggers that are passed to every component of the runner.
// It builds on the prometheus logger so output matches the rest of our containers.
package logging

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"github.com/prometheus/common/log"
)

// Logger is the logging interface every component receives
type Logger = log.Logger

// New creates a Logger writing to w at the given level (debug, info, warn, error, fatal)
func New(w io.Writer, level string) (Logger, error) {
	logger := log.NewLogger(w)
	if level == "" {
		level = "info"
	}
	if err := logger.SetLevel(level); err != nil {
		return nil, err
	}
	return logger, nil
}

// Recorder is a Logger that keeps everything it logs in memory
type Recorder struct {
	Logger
	buf *syncBuffer
}

// NewRecorder creates a Recorder logging at debug level
func NewRecorder() *Recorder {
	buf := &syncBuffer{}
	logger := log.NewLogger(buf)
	_ = logger.SetLevel("debug")
	return &Recorder{Logger: logger, buf: buf}
}

// Lines returns every recorded log line
func (r *Recorder) Lines() []string {
	out := strings.TrimRight(r.buf.String(), "\n")
	if out == "" {
		return []string{}
	}
	return strings.Split(out, "\n")
}

// Contains reports whether any recorded line contains substr
func (r *Recorder) Contains(substr string) bool {
	for _, line := range r.Lines() {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
