package migration

import (
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sqlFiles(files map[string]string) fstest.MapFS {
	out := fstest.MapFS{}
	for name, body := range files {
		out[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return out
}

func TestCurrentVersion(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, sqlFiles(nil), DriverSQLite)

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0 on a fresh database, got %d", version)
	}

	if err := runner.SetVersion(5); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	if version, _ = runner.CurrentVersion(); version != 5 {
		t.Errorf("expected version 5, got %d", version)
	}
}

func TestMigrations(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		want    []int
		wantErr string
	}{
		{
			name: "sorted by version",
			files: map[string]string{
				"002_second.sql": "SELECT 2;",
				"001_first.sql":  "SELECT 1;",
				"README.md":      "ignored",
			},
			want: []int{1, 2},
		},
		{
			name:    "missing separator",
			files:   map[string]string{"001.sql": "SELECT 1;"},
			wantErr: "invalid migration filename",
		},
		{
			name:    "non numeric version",
			files:   map[string]string{"abc_init.sql": "SELECT 1;"},
			wantErr: "invalid version",
		},
		{
			name:    "zero version",
			files:   map[string]string{"000_init.sql": "SELECT 1;"},
			wantErr: "must be at least 1",
		},
		{
			name:    "duplicate version",
			files:   map[string]string{"001_a.sql": "SELECT 1;", "1_b.sql": "SELECT 1;"},
			wantErr: "duplicate migration version 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(nil, sqlFiles(tt.files), DriverSQLite)
			migrations, err := runner.Migrations()
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Migrations failed: %v", err)
			}
			var got []int
			for _, m := range migrations {
				got = append(got, m.Version)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply(t *testing.T) {
	db := setupTestDB(t)
	files := map[string]string{
		"001_users.sql": "CREATE TABLE users (id TEXT PRIMARY KEY);",
		"002_posts.sql": `
			CREATE TABLE posts (id TEXT PRIMARY KEY, user_id TEXT REFERENCES users(id));
			CREATE INDEX idx_posts_user ON posts(user_id);
		`,
	}
	runner := NewRunner(db, sqlFiles(files), DriverSQLite)

	var logged []string
	count, err := runner.Apply(func(msg string) { logged = append(logged, msg) })
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NotEmpty(t, logged)

	st, err := runner.Status()
	require.NoError(t, err)
	assert.True(t, st.UpToDate())
	assert.Equal(t, 2, st.Current)

	if _, err := db.Exec("INSERT INTO posts (id, user_id) VALUES ('p1', NULL)"); err != nil {
		t.Errorf("posts table not usable after migration: %v", err)
	}

	count, err = runner.Apply(nil)
	require.NoError(t, err)
	assert.Zero(t, count, "second run should be a no-op")
}

func TestApply_FailureRollsBack(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, sqlFiles(map[string]string{
		"001_ok.sql":     "CREATE TABLE ok (id INTEGER);",
		"002_broken.sql": "CREATE TABLE broken (id INTEGER; -- syntax error",
	}), DriverSQLite)

	count, err := runner.Apply(nil)
	require.Error(t, err)
	assert.Equal(t, 1, count)

	version, err := runner.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version, "failed migration must not bump the version")
}

func TestValidate_SchemaTooNew(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, sqlFiles(map[string]string{"001_init.sql": "SELECT 1;"}), DriverSQLite)
	require.NoError(t, runner.SetVersion(3))

	err := runner.Validate()
	if !errors.Is(err, ErrSchemaTooNew) {
		t.Fatalf("expected ErrSchemaTooNew, got %v", err)
	}
}

func TestSetVersion_PostgresPlaceholders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_version")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schema_version")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schema_version (version) VALUES ($1)")).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	runner := NewRunner(db, sqlFiles(nil), DriverPostgres)
	require.NoError(t, runner.SetVersion(7))
	assert.NoError(t, mock.ExpectationsWereMet())
}
