package executor

import (
	"context"
	"time"

	"flowcap/internal/manifest"
)

// DefaultStubDelay stands in for the time a real replay would take.
const DefaultStubDelay = 1 * time.Second

// StubReplayer is the placeholder replay engine: it waits a fixed delay and
// logs one line per declared output-artifact pattern without producing any
// files. A real engine replaces this with recorded-action playback.
type StubReplayer struct {
	Delay time.Duration // DefaultStubDelay if zero
}

func (s *StubReplayer) Replay(ctx context.Context, m *manifest.Manifest, _ map[string]string, logf func(string, ...any)) error {
	delay := s.Delay
	if delay == 0 {
		delay = DefaultStubDelay
	}

	logf("executing workflow...")
	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return ctx.Err()
	}

	for _, pattern := range m.OutputArtifacts {
		logf("would collect artifact: %s", pattern)
	}
	return nil
}
