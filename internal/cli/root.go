// Package cli holds the shared command context and the domain commands.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/alpha/internal/backup"
	"github.com/julianstephens/alpha/internal/config"
	"github.com/julianstephens/alpha/internal/logger"
	"github.com/julianstephens/alpha/internal/progress"
	"github.com/julianstephens/alpha/internal/storage"
	"github.com/julianstephens/alpha/internal/storage/sqlite"
	"github.com/julianstephens/alpha/internal/tracker"
)

type Context struct {
	Store   storage.Provider
	Tracker *tracker.Tracker
	Config  *config.Config
	// ConfigFile is where `alpha init` writes a starter config.
	ConfigFile string
	User       string

	Out io.Writer
	In  io.Reader
}

// Stdout is where command output goes, os.Stdout unless Out is set.
func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Confirm asks a yes/no question and defaults to no.
func (c *Context) Confirm(prompt string) (bool, error) {
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	c.Printf("%s [y/N]: ", prompt)
	resp, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	resp = strings.ToLower(strings.TrimSpace(resp))
	return resp == "y" || resp == "yes", nil
}

// Backups returns the backup manager for a SQLite store.
func (c *Context) Backups() (*backup.Manager, error) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, backup.ErrNotSQLite
	}
	keep := 0
	if c.Config != nil {
		keep = c.Config.Backup.Keep
	}
	return backup.NewManager(c.Store.GetConfigPath(), backup.WithKeep(keep)), nil
}

// PerformAutomaticBackup snapshots a SQLite store and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.Backups()
	if err != nil {
		return
	}
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ParseDay accepts YYYY-MM-DD, "today", "yesterday", or "" for today.
func (c *Context) ParseDay(s string) (time.Time, error) {
	today, err := c.Tracker.Today()
	if err != nil {
		return time.Time{}, err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}
	d, err := progress.ParseDay(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", s)
	}
	return d, nil
}

// ParseMoney parses a non-negative amount such as "1234.50" or "$1,234.50".
func ParseMoney(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount cannot be negative: %s", s)
	}
	return d.Round(2), nil
}

// ShortID trims a UUID for display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
