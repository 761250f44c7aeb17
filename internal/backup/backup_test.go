package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/alpha/internal/constants"
	"github.com/julianstephens/alpha/internal/models"
	"github.com/julianstephens/alpha/internal/storage/sqlite"
)

var start = time.Date(2026, 3, 15, 9, 30, 0, 0, time.Local)

// stepClock returns a clock that advances one second per call.
func stepClock() func() time.Time {
	n := 0
	return func() time.Time {
		n++
		return start.Add(time.Duration(n) * time.Second)
	}
}

func setupDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "alpha.db")
	store := sqlite.NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	habit := models.Habit{
		ID: "h1", UserID: "me", Title: "Read", Domain: models.DomainMind,
		Active: true, CreatedAt: start,
	}
	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func countHabits(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM habits").Scan(&n); err != nil {
		t.Fatalf("count habits: %v", err)
	}
	return n
}

func TestCreate(t *testing.T) {
	dbPath := setupDB(t)
	mgr := NewManager(dbPath, WithClock(stepClock()))

	info, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if filepath.Dir(info.Path) != filepath.Join(filepath.Dir(dbPath), constants.BackupDirName) {
		t.Errorf("backup written to %s, want the backups directory", info.Path)
	}
	if info.Name() != "alpha-20260315-093001.db" {
		t.Errorf("Name() = %q", info.Name())
	}
	if info.Size == 0 {
		t.Error("backup is empty")
	}
	if got := countHabits(t, info.Path); got != 1 {
		t.Errorf("backup has %d habits, want 1", got)
	}
}

func TestCreate_MissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(); err == nil {
		t.Fatal("expected error for missing database")
	}
}

func TestCreate_SameSecondGetsCounter(t *testing.T) {
	dbPath := setupDB(t)
	mgr := NewManager(dbPath, WithClock(func() time.Time { return start }))

	first, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	second, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	if first.Path == second.Path {
		t.Fatal("second backup overwrote the first")
	}
	if second.Name() != "alpha-20260315-093000-1.db" {
		t.Errorf("second Name() = %q", second.Name())
	}

	list, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("List returned %d backups, want 2", len(list))
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupDB(t)
	mgr := NewManager(dbPath, WithKeep(3), WithClock(stepClock()))

	for i := 0; i < 5; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}

	list, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("kept %d backups, want 3", len(list))
	}
	if list[0].Name() != "alpha-20260315-093005.db" || list[2].Name() != "alpha-20260315-093003.db" {
		t.Errorf("unexpected survivors: %s .. %s", list[0].Name(), list[2].Name())
	}
}

func TestList_IgnoresForeignFiles(t *testing.T) {
	dbPath := setupDB(t)
	mgr := NewManager(dbPath)

	if list, err := mgr.List(); err != nil || len(list) != 0 {
		t.Fatalf("List before any backup = %v, %v", list, err)
	}

	if err := os.MkdirAll(mgr.Dir(), 0o700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "alpha-garbage.db", "other-20260101-000000.db"} {
		if err := os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	list, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("List picked up %d foreign files", len(list))
	}
}

func TestParseStamp(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"alpha-20260315-093000.db", true},
		{"alpha-20260315-093000-12.db", true},
		{"alpha-20260315.db", false},
		{"alpha-20260315-093000.sql", false},
	}
	for _, tt := range tests {
		if _, ok := parseStamp(tt.name); ok != tt.ok {
			t.Errorf("parseStamp(%q) ok = %v, want %v", tt.name, ok, tt.ok)
		}
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupDB(t)
	mgr := NewManager(dbPath, WithClock(stepClock()))

	snap, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("DELETE FROM habits"); err != nil {
		t.Fatal(err)
	}
	db.Close()
	if got := countHabits(t, dbPath); got != 0 {
		t.Fatalf("setup: %d habits left", got)
	}

	safety, err := mgr.Restore(snap.Path)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if safety == nil {
		t.Fatal("expected a safety backup of the replaced database")
	}
	if got := countHabits(t, safety.Path); got != 0 {
		t.Errorf("safety backup has %d habits, want 0", got)
	}
	if got := countHabits(t, dbPath); got != 1 {
		t.Errorf("restored database has %d habits, want 1", got)
	}
	if _, err := os.Stat(dbPath + ".restore.tmp"); !os.IsNotExist(err) {
		t.Error("temporary restore file left behind")
	}
}

func TestRestore_RejectsInvalidFiles(t *testing.T) {
	dbPath := setupDB(t)
	mgr := NewManager(dbPath)
	dir := t.TempDir()

	garbage := filepath.Join(dir, "garbage.db")
	if err := os.WriteFile(garbage, []byte("not a database at all, just text"), 0o600); err != nil {
		t.Fatal(err)
	}

	foreign := filepath.Join(dir, "foreign.db")
	db, err := sql.Open("sqlite", foreign)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("CREATE TABLE other (id INTEGER)"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	for _, path := range []string{garbage, foreign, filepath.Join(dir, "missing.db")} {
		if _, err := mgr.Restore(path); err == nil {
			t.Errorf("Restore(%s) succeeded, want error", filepath.Base(path))
		}
	}
	if got := countHabits(t, dbPath); got != 1 {
		t.Errorf("database modified by failed restore: %d habits", got)
	}
}

func TestResolve(t *testing.T) {
	dbPath := setupDB(t)
	mgr := NewManager(dbPath, WithClock(stepClock()))
	info, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}

	got, err := mgr.Resolve(info.Name())
	if err != nil {
		t.Fatalf("Resolve by name failed: %v", err)
	}
	if got != info.Path {
		t.Errorf("Resolve(%q) = %q, want %q", info.Name(), got, info.Path)
	}
	if got, err := mgr.Resolve(info.Path); err != nil || got != info.Path {
		t.Errorf("Resolve(abs) = %q, %v", got, err)
	}
	if _, err := mgr.Resolve("alpha-19990101-000000.db"); err == nil {
		t.Error("expected error for unknown backup")
	}
}
