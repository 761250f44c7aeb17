package system

import (
	"strings"
	"testing"

	"github.com/julianstephens/alpha/internal/notifier"
)

func withoutTray(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	orig := newNotifier
	newNotifier = func() *notifier.Notifier {
		return notifier.New(notifier.WithConfigDir(func() (string, error) { return dir, nil }))
	}
	t.Cleanup(func() { newNotifier = orig })
}

func TestRemindCmd(t *testing.T) {
	withoutTray(t)
	ctx, out := setupTestContext(t)
	run := addHabit(t, ctx, "Run")
	addHabit(t, ctx, "Read")

	if err := (&RemindCmd{}).Run(ctx); err != nil {
		t.Fatalf("RemindCmd.Run() error = %v", err)
	}
	if got := out.String(); !strings.Contains(got, "2 habits left today: Run, Read") {
		t.Errorf("expected fallback reminder text, got %q", got)
	}

	if _, err := ctx.Tracker.ToggleCompletion(run.ID, testNow); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := (&RemindCmd{DryRun: true}).Run(ctx); err != nil {
		t.Fatalf("RemindCmd.Run(dry run) error = %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "1 habit left today: Read" {
		t.Errorf("dry run output = %q", got)
	}
}

func TestRemindCmd_Disabled(t *testing.T) {
	withoutTray(t)
	ctx, out := setupTestContext(t)
	addHabit(t, ctx, "Run")

	settings, err := ctx.Tracker.Settings()
	if err != nil {
		t.Fatal(err)
	}
	settings.RemindEnabled = false
	if err := ctx.Tracker.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	if err := (&RemindCmd{}).Run(ctx); err != nil {
		t.Fatalf("RemindCmd.Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Reminders are disabled") {
		t.Errorf("unexpected output: %q", out)
	}

	out.Reset()
	if err := (&RemindCmd{Force: true, DryRun: true}).Run(ctx); err != nil {
		t.Fatalf("RemindCmd.Run(force) error = %v", err)
	}
	if !strings.Contains(out.String(), "1 habit left today: Run") {
		t.Errorf("forced reminder not printed: %q", out)
	}
}

func TestRemindCmd_AllDone(t *testing.T) {
	withoutTray(t)
	ctx, out := setupTestContext(t)
	h := addHabit(t, ctx, "Run")
	if _, err := ctx.Tracker.ToggleCompletion(h.ID, testNow); err != nil {
		t.Fatal(err)
	}
	if err := (&RemindCmd{}).Run(ctx); err != nil {
		t.Fatalf("RemindCmd.Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "All habits done") {
		t.Errorf("unexpected output: %q", out)
	}
}
