// Package tracker coordinates the store and the progress engine. Every
// mutation runs in one transaction and returns freshly derived values, so
// callers refetch state after each change rather than patching it locally.
package tracker

import (
	stderrors "errors"
	"fmt"
	"time"

	"github.com/julianstephens/alpha/internal/constants"
	"github.com/julianstephens/alpha/internal/errors"
	"github.com/julianstephens/alpha/internal/models"
	"github.com/julianstephens/alpha/internal/progress"
	"github.com/julianstephens/alpha/internal/storage"
)

type Tracker struct {
	store    storage.Provider
	now      func() time.Time
	timezone string
}

type Option func(*Tracker)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithTimezone is used when the stored timezone setting is unset or "Local".
func WithTimezone(tz string) Option {
	return func(t *Tracker) { t.timezone = tz }
}

func New(store storage.Provider, opts ...Option) *Tracker {
	t := &Tracker{store: store, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Store exposes the underlying provider for read-only commands.
func (t *Tracker) Store() storage.Provider {
	return t.store
}

// Today is the current calendar day in the configured timezone.
func (t *Tracker) Today() (time.Time, error) {
	settings, err := t.store.GetSettings()
	if err != nil && !stderrors.Is(err, storage.ErrNotFound) {
		return time.Time{}, errors.Store("load settings", err)
	}
	tz := settings.Timezone
	if (tz == "" || tz == constants.DefaultTimezone) && t.timezone != "" {
		tz = t.timezone
	}
	loc, err := progress.LoadLocation(tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return progress.Day(t.now().In(loc)), nil
}

// wrap turns store failures into StoreErrors and leaves lookups that found
// nothing and validation failures alone.
func wrap(op string, err error) error {
	if err == nil || stderrors.Is(err, storage.ErrNotFound) || stderrors.Is(err, errInvalid) {
		return err
	}
	return errors.Store(op, err)
}

var errInvalid = stderrors.New("invalid input")

func invalid(err error) error {
	return fmt.Errorf("%w: %v", errInvalid, err)
}

// Snapshot is everything the dashboard renders for one user on one day.
type Snapshot struct {
	Today       time.Time
	Profile     models.Profile
	Habits      []progress.HabitStat
	Domains     []progress.DomainAverage
	BestDomain  models.Domain
	HasBest     bool
	Sprint      *models.Sprint
	Timeline    progress.Timeline
	LatestScore *models.AlphaScore
	Challenges  []ChallengeView
}

// Dashboard derives the full progress view from current store state.
func (t *Tracker) Dashboard(userID string) (Snapshot, error) {
	today, err := t.Today()
	if err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{Today: today}

	if snap.Profile, err = t.store.GetProfile(userID); err != nil {
		return Snapshot{}, wrap("load profile", err)
	}

	habits, err := t.store.ListActiveHabits(userID)
	if err != nil {
		return Snapshot{}, wrap("load habits", err)
	}
	for _, h := range habits {
		snap.Habits = append(snap.Habits, progress.HabitStats(h, today))
	}
	snap.Domains = progress.DomainAverages(snap.Habits)
	snap.BestDomain, snap.HasBest = progress.BestDomain(snap.Domains)

	if snap.Sprint, err = t.store.ActiveSprint(userID, progress.FormatDay(today)); err != nil {
		return Snapshot{}, wrap("load sprint", err)
	}
	if snap.Sprint != nil {
		start, _ := progress.ParseDay(snap.Sprint.StartDay)
		end, _ := progress.ParseDay(snap.Sprint.EndDay)
		snap.Timeline = progress.SprintTimeline(start, end, today)
	}

	if snap.LatestScore, err = t.store.GetLatestScore(userID); err != nil {
		return Snapshot{}, wrap("load alpha score", err)
	}

	if snap.Challenges, err = t.Challenges(userID, today.Year(), int(today.Month())); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// IsInvalid reports whether err was caused by rejected input.
func IsInvalid(err error) bool {
	return stderrors.Is(err, errInvalid)
}
