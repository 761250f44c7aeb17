package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/alpha/internal/models"
	"github.com/julianstephens/alpha/internal/storage/sqlite"
	"github.com/julianstephens/alpha/internal/tracker"
)

var testNow = time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

func setupTestContext(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()
	store, err := sqlite.NewMemory()
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if err := store.SaveSettings(models.Settings{Timezone: "UTC", RemindEnabled: true, WeekStart: "monday"}); err != nil {
		t.Fatal(err)
	}

	out := &bytes.Buffer{}
	return &Context{
		Store:   store,
		Tracker: tracker.New(store, tracker.WithClock(func() time.Time { return testNow })),
		User:    "me",
		Out:     out,
	}, out
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1234.5", want: "1234.5"},
		{in: "$1,234.56", want: "1234.56"},
		{in: " 10 ", want: "10"},
		{in: "3.14159", want: "3.14"},
		{in: "-5", wantErr: true},
		{in: "ten", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMoney(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseMoney(%q) expected error, got %s", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMoney(%q) error = %v", tt.in, err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("ParseMoney(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestContext_ParseDay(t *testing.T) {
	ctx, _ := setupTestContext(t)
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: "2026-03-15"},
		{in: "Today", want: "2026-03-15"},
		{in: "yesterday", want: "2026-03-14"},
		{in: "2026-01-02", want: "2026-01-02"},
		{in: "01/02/2026", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ctx.ParseDay(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDay(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got.Format("2006-01-02") != tt.want {
				t.Errorf("ParseDay(%q) = %s, want %s", tt.in, got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestContext_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		out := &bytes.Buffer{}
		ctx := &Context{In: strings.NewReader(tt.input), Out: out}
		got, err := ctx.Confirm("Proceed?")
		if err != nil {
			t.Fatalf("Confirm(%q) error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if out.String() != "Proceed? [y/N]: " {
			t.Errorf("prompt = %q", out.String())
		}
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("ShortID() = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID(short) = %q", got)
	}
}
