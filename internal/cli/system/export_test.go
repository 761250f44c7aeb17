package system

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportCmd_JSONToStdout(t *testing.T) {
	ctx, out := setupTestContext(t)
	h := addHabit(t, ctx, "Run")
	if _, err := ctx.Tracker.ToggleCompletion(h.ID, testNow); err != nil {
		t.Fatal(err)
	}

	if err := (&ExportCmd{Format: "json", Out: "-"}).Run(ctx); err != nil {
		t.Fatalf("ExportCmd.Run() error = %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if _, ok := doc["habits"]; !ok {
		t.Errorf("JSON export missing habits: %v", doc)
	}
}

func TestExportCmd_CSVFile(t *testing.T) {
	ctx, out := setupTestContext(t)
	h := addHabit(t, ctx, "Run")
	if _, err := ctx.Tracker.ToggleCompletion(h.ID, testNow); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "alpha.csv")

	if err := (&ExportCmd{Format: "csv", Out: path}).Run(ctx); err != nil {
		t.Fatalf("ExportCmd.Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Exported 1 habits, 1 completions") {
		t.Errorf("unexpected summary: %q", out)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header and one row, got %d rows", len(rows))
	}
	if rows[1][0] != "2026-03-15" || rows[1][2] != "Run" {
		t.Errorf("row = %v", rows[1])
	}
}

func TestExportCmd_BadFormat(t *testing.T) {
	ctx, _ := setupTestContext(t)
	if err := (&ExportCmd{Format: "xml"}).Run(ctx); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
