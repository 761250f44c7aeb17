package settings

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/alpha/internal/cli"
	"github.com/julianstephens/alpha/internal/storage/sqlite"
	"github.com/julianstephens/alpha/internal/tracker"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	return &cli.Context{Store: store, Tracker: tracker.New(store), User: "me", Out: out}, out
}

func ptr[T any](v T) *T { return &v }

func TestSettingsCmd_List(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&SettingsCmd{}).Run(ctx); err != nil {
		t.Fatalf("SettingsCmd.Run() error = %v", err)
	}
	got := out.String()
	for _, want := range []string{"Timezone:   Local", "Reminders:  true", "Week start: monday"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestSettingsCmd_Update(t *testing.T) {
	ctx, out := setupTestDB(t)

	cmd := &SettingsCmd{
		Timezone:  ptr("UTC"),
		Remind:    ptr(false),
		WeekStart: ptr("Sunday"),
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("SettingsCmd.Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Settings updated successfully.") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if strings.Contains(out.String(), "Current Settings:") {
		t.Errorf("settings listed without --list:\n%s", out)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if settings.Timezone != "UTC" {
		t.Errorf("Timezone = %q", settings.Timezone)
	}
	if settings.RemindEnabled {
		t.Error("RemindEnabled = true, want false")
	}
	if settings.WeekStart != "sunday" {
		t.Errorf("WeekStart = %q, want sunday", settings.WeekStart)
	}
}

func TestSettingsCmd_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cmd  SettingsCmd
	}{
		{"bad timezone", SettingsCmd{Timezone: ptr("Mars/Olympus")}},
		{"bad week start", SettingsCmd{WeekStart: ptr("wednesday")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupTestDB(t)
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected an error")
			}
			settings, err := ctx.Store.GetSettings()
			if err != nil {
				t.Fatal(err)
			}
			if settings.Timezone != "Local" || settings.WeekStart != "monday" {
				t.Errorf("settings changed after a rejected update: %+v", settings)
			}
		})
	}
}
