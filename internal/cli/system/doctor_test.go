package system

import (
	"strings"
	"testing"
)

func TestDoctorCmd_Healthy(t *testing.T) {
	ctx, out := setupTestContext(t)
	h := addHabit(t, ctx, "Run")
	if _, err := ctx.Tracker.ToggleCompletion(h.ID, testNow); err != nil {
		t.Fatal(err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("DoctorCmd.Run() error = %v\n%s", err, out)
	}
	got := out.String()
	for _, want := range []string{
		"✓ Database reachable: OK",
		"✓ Schema version: OK",
		"⚠ Backups present: WARNING",
		"✓ Habit integrity: OK",
		"All checks passed!",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestDoctorCmd_BackupPresent(t *testing.T) {
	ctx, out := setupTestContext(t)
	ctx.PerformAutomaticBackup()

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("DoctorCmd.Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backups present: OK") {
		t.Errorf("expected backups check to pass:\n%s", out)
	}
}

func TestDoctorCmd_FutureCompletion(t *testing.T) {
	ctx, out := setupTestContext(t)
	h := addHabit(t, ctx, "Meditate")
	if err := ctx.Store.SetCompletion(h.ID, "2030-01-01", true); err != nil {
		t.Fatal(err)
	}

	err := (&DoctorCmd{}).Run(ctx)
	if err == nil {
		t.Fatal("expected diagnostics to fail")
	}
	got := out.String()
	if !strings.Contains(got, "❌ Habit integrity: FAIL") {
		t.Errorf("expected habit integrity failure:\n%s", got)
	}
	if !strings.Contains(got, "completion in the future (2030-01-01)") {
		t.Errorf("expected the offending day in the output:\n%s", got)
	}
}

func TestJoinProblems(t *testing.T) {
	if err := joinProblems(nil); err != nil {
		t.Errorf("joinProblems(nil) = %v", err)
	}
	if err := joinProblems([]string{"one"}); err == nil || err.Error() != "one" {
		t.Errorf("joinProblems(one) = %v", err)
	}
	err := joinProblems([]string{"a", "b"})
	if err == nil || !strings.HasPrefix(err.Error(), "2 problems found:") {
		t.Errorf("joinProblems(a, b) = %v", err)
	}
}
