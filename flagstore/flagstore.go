// Package flagstore implements a process-wide, concurrently-readable
// feature-flag store sourced from the process environment and refreshed
// on a fixed interval.
package flagstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// envPrefix identifies which environment variables are flags. Matching is
// case-insensitive; the remainder of the name, lowercased, is the flag key.
const envPrefix = "feature_flag_"

// DefaultRefreshInterval is used when no WithRefreshInterval option is
// supplied.
const DefaultRefreshInterval = 300 * time.Second

// ErrAlreadyStarted is returned by Start if called more than once on the
// same FlagStore. The refresher runs indefinitely; there is no stop
// operation beyond context cancellation, so restarting is not supported.
var ErrAlreadyStarted = errors.New("flagstore: already started")

// Option configures a FlagStore at construction time.
type Option func(*FlagStore)

// WithRefreshInterval overrides DefaultRefreshInterval.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *FlagStore) { s.refreshInterval = d }
}

// FlagStore is a thread-safe mapping of flag name to boolean, refreshed
// from the environment. The zero value is not usable; construct with New.
type FlagStore struct {
	mu    sync.RWMutex
	flags map[string]bool

	refreshInterval time.Duration

	startMu sync.Mutex
	started bool
	cron    *cron.Cron
}

// New constructs a FlagStore. Call Start to begin the background refresher;
// IsEnabled is safe to call beforehand and simply reports false for every
// name until the first refresh completes.
func New(opts ...Option) *FlagStore {
	s := &FlagStore{
		flags:           make(map[string]bool),
		refreshInterval: DefaultRefreshInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the background refresher. The first refresh happens
// synchronously before Start returns, so flags are populated promptly.
// Subsequent refreshes run on a cron schedule of "@every <RefreshInterval>",
// stopping automatically when ctx is done.
//
// The refresh job is wrapped with cron.Recover so a panic triggered by a
// future change to the refresh logic degrades to a logged skip rather than
// crashing the process.
func (s *FlagStore) Start(ctx context.Context) error {
	s.startMu.Lock()
	defer s.startMu.Unlock()
	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true

	s.refresh()

	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))
	spec := fmt.Sprintf("@every %s", s.refreshInterval.String())
	if _, err := c.AddFunc(spec, s.refresh); err != nil {
		return fmt.Errorf("flagstore: schedule refresh: %w", err)
	}
	c.Start()
	s.cron = c

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()
	return nil
}

// refresh rebuilds/updates flags from the current environment. For every
// environment variable whose lowercased key begins with envPrefix, the
// suffix becomes the flag key and the value is parsed per parseBool.
// Entries whose environment variable has since been unset are left as-is:
// a flag sticks at its last known value rather than reverting to false.
func (s *FlagStore) refresh() {
	updates := make(map[string]bool)
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		lowerKey := strings.ToLower(key)
		if !strings.HasPrefix(lowerKey, envPrefix) {
			continue
		}
		name := strings.TrimPrefix(lowerKey, envPrefix)
		updates[name] = parseBool(value)
	}

	s.mu.Lock()
	for name, enabled := range updates {
		s.flags[name] = enabled
	}
	s.mu.Unlock()
}

// parseBool is a total value parser: "true"/"1" (case-insensitive) is
// true, everything else — including malformed or empty values — is false.
// It never errors.
func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "true", "1":
		return true
	default:
		return false
	}
}

// IsEnabled reports the current value of name, or false if absent. name is
// lowercased before lookup so FEATURE_FLAG_X and feature_flag_x resolve to
// the same entry regardless of caller casing.
func (s *FlagStore) IsEnabled(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags[strings.ToLower(name)]
}
