package backups

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/alpha/internal/backup"
	"github.com/julianstephens/alpha/internal/cli"
	"github.com/julianstephens/alpha/internal/models"
	"github.com/julianstephens/alpha/internal/storage/sqlite"
	"github.com/julianstephens/alpha/internal/tracker"
)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "alpha.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	return &cli.Context{
		Store:   store,
		Tracker: tracker.New(store),
		User:    "me",
		Out:     out,
	}, out
}

func TestBackupListCmd_Empty(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("BackupListCmd.Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("BackupCreateCmd.Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backup created: alpha-") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("BackupListCmd.Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Available backups (1 total") {
		t.Errorf("unexpected list output:\n%s", out)
	}
}

func TestBackupRestoreCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	if _, err := ctx.Tracker.AddHabit("me", "Before backup", "", models.DomainMind); err != nil {
		t.Fatal(err)
	}
	mgr, err := ctx.Backups()
	if err != nil {
		t.Fatal(err)
	}
	info, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Tracker.AddHabit("me", "After backup", "", models.DomainMind); err != nil {
		t.Fatal(err)
	}

	if err := (&BackupRestoreCmd{BackupFile: info.Name(), Yes: true}).Run(ctx); err != nil {
		t.Fatalf("BackupRestoreCmd.Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Database restored successfully") {
		t.Errorf("unexpected output:\n%s", out)
	}

	if err := ctx.Store.Load(); err != nil {
		t.Fatal(err)
	}
	habits, err := ctx.Store.ListHabits("me")
	if err != nil {
		t.Fatal(err)
	}
	if len(habits) != 1 || habits[0].Title != "Before backup" {
		t.Errorf("restored habits = %+v", habits)
	}
}

func TestBackupRestoreCmd_Declined(t *testing.T) {
	ctx, out := setupTestContext(t)
	mgr, err := ctx.Backups()
	if err != nil {
		t.Fatal(err)
	}
	info, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	ctx.In = strings.NewReader("n\n")

	if err := (&BackupRestoreCmd{BackupFile: info.Path}).Run(ctx); err != nil {
		t.Fatalf("BackupRestoreCmd.Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestBackupCmd_MemoryStore(t *testing.T) {
	store, err := sqlite.NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	ctx := &cli.Context{Store: store, Tracker: tracker.New(store), Out: &bytes.Buffer{}}

	// A memory store is still a *sqlite.Store, but has no file to snapshot.
	if err := (&BackupCreateCmd{}).Run(ctx); err == nil {
		t.Error("expected backing up an in-memory database to fail")
	}
}

func TestBackups_NotSQLite(t *testing.T) {
	ctx := &cli.Context{}
	if _, err := ctx.Backups(); !errors.Is(err, backup.ErrNotSQLite) {
		t.Errorf("Backups() error = %v, want ErrNotSQLite", err)
	}
}
