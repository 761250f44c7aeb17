// Package notifier delivers habit reminders to the desktop tray companion.
//
// The tray app writes "port|pid|secret" to a lockfile in its config
// directory and listens on 127.0.0.1:port for JSON webhooks.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/alpha/internal/constants"
	"github.com/julianstephens/alpha/internal/logger"
	"github.com/julianstephens/alpha/internal/models"
)

const secretHeader = "X-Alpha-Secret"

var ErrTrayNotRunning = errors.New(constants.TrayExecutablePrefix + " is not running")

type Payload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

type Notifier struct {
	configDir   func() (string, error)
	findProcess func(int) (ps.Process, error)
	client      *http.Client
}

type Option func(*Notifier)

func WithConfigDir(fn func() (string, error)) Option {
	return func(n *Notifier) { n.configDir = fn }
}

func WithProcessFinder(fn func(int) (ps.Process, error)) Option {
	return func(n *Notifier) { n.findProcess = fn }
}

func WithHTTPClient(c *http.Client) Option {
	return func(n *Notifier) { n.client = c }
}

func New(opts ...Option) *Notifier {
	n := &Notifier{
		configDir:   os.UserConfigDir,
		findProcess: ps.FindProcess,
		client:      &http.Client{Timeout: 5 * time.Second},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify sends text to the running tray app.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	dir, err := n.TrayDir()
	if err != nil {
		return err
	}
	ep, err := n.endpoint(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}
	return n.send(ctx, ep, Payload{Text: text, DurationMs: constants.NotificationDurationMs})
}

// Remind notifies about habits still open today. It sends nothing and
// reports false when every habit is done.
func (n *Notifier) Remind(ctx context.Context, pending []models.Habit) (bool, error) {
	text := ReminderText(pending)
	if text == "" {
		return false, nil
	}
	if err := n.Notify(ctx, text); err != nil {
		logger.Warn("Reminder not delivered", "pending", len(pending), "error", err)
		return false, err
	}
	logger.Info("Reminder delivered", "pending", len(pending))
	return true, nil
}

// ReminderText lists up to three pending habits by title.
func ReminderText(pending []models.Habit) string {
	switch len(pending) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("1 habit left today: %s", pending[0].Title)
	}

	titles := make([]string, 0, 3)
	for i, h := range pending {
		if i == 3 {
			break
		}
		titles = append(titles, h.Title)
	}
	text := fmt.Sprintf("%d habits left today: %s", len(pending), strings.Join(titles, ", "))
	if extra := len(pending) - len(titles); extra > 0 {
		text += fmt.Sprintf(" and %d more", extra)
	}
	return text
}

// TrayDir is the tray app's config directory, or the lockfile directory it
// was configured to use instead.
func (n *Notifier) TrayDir() (string, error) {
	base, err := n.configDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	dir := filepath.Join(base, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(dir, "settings.json"))
	if err != nil {
		return dir, nil
	}
	var stored struct {
		Settings struct {
			LockfileDir string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &stored); err != nil {
		logger.Debug("Ignoring unreadable tray settings", "error", err)
		return dir, nil
	}
	if stored.Settings.LockfileDir != "" {
		return stored.Settings.LockfileDir, nil
	}
	return dir, nil
}

type endpoint struct {
	port   int
	secret string
}

// endpoint parses the lockfile and checks that its pid belongs to the tray
// executable, so a stale lockfile never leaks the secret elsewhere.
func (n *Notifier) endpoint(lockfile string) (endpoint, error) {
	content, err := os.ReadFile(lockfile)
	if err != nil {
		return endpoint{}, ErrTrayNotRunning
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return endpoint{}, errors.New("lockfile is malformed")
	}

	port, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return endpoint{}, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return endpoint{}, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return endpoint{}, errors.New("invalid process ID in lockfile")
	}
	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return endpoint{}, errors.New("secret in lockfile is empty")
	}

	proc, err := n.findProcess(pid)
	if err != nil || proc == nil {
		return endpoint{}, ErrTrayNotRunning
	}
	if !strings.HasPrefix(proc.Executable(), constants.TrayExecutablePrefix) {
		return endpoint{}, fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.TrayExecutablePrefix, proc.Executable())
	}
	return endpoint{port: port, secret: secret}, nil
}

func (n *Notifier) send(ctx context.Context, ep endpoint, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("http://127.0.0.1:%d", ep.port)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(secretHeader, ep.secret)

	res, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach tray app: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
}
