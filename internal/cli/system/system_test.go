package system

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/alpha/internal/cli"
	"github.com/julianstephens/alpha/internal/config"
	"github.com/julianstephens/alpha/internal/models"
	"github.com/julianstephens/alpha/internal/storage/sqlite"
	"github.com/julianstephens/alpha/internal/tracker"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.Local)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(dir, "alpha.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	return &cli.Context{
		Store:      store,
		Tracker:    tracker.New(store, tracker.WithClock(func() time.Time { return testNow })),
		Config:     config.Default(),
		ConfigFile: filepath.Join(dir, "config.yaml"),
		User:       "me",
		Out:        out,
	}, out
}

func addHabit(t *testing.T, ctx *cli.Context, title string) models.Habit {
	t.Helper()
	h, err := ctx.Tracker.AddHabit(ctx.User, title, "", models.DomainBody)
	if err != nil {
		t.Fatalf("AddHabit(%q): %v", title, err)
	}
	return h
}
