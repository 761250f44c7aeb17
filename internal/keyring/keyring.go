// Package keyring keeps the PostgreSQL connection string in the OS keyring
// so it never has to appear in a flag or config file.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/alpha/internal/constants"
)

var (
	ErrNotFound    = errors.New("no connection string stored in keyring")
	ErrUnavailable = errors.New("OS keyring is not available")
)

// probeAccount is read, never written, to test whether the keyring answers.
const probeAccount = "availability-probe"

func ConnectionString() (string, error) {
	conn, err := gokeyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return conn, nil
}

func SetConnectionString(conn string) error {
	conn = strings.TrimSpace(conn)
	if conn == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := gokeyring.Set(constants.AppName, constants.DefaultKeyringUser, conn); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}
	return nil
}

func DeleteConnectionString() error {
	if err := gokeyring.Delete(constants.AppName, constants.DefaultKeyringUser); err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}
	return nil
}

// Status describes the keyring as seen by `alpha keyring status`.
type Status struct {
	Available bool
	Stored    bool
}

func CurrentStatus() Status {
	_, err := gokeyring.Get(constants.AppName, probeAccount)
	if err != nil && !errors.Is(err, gokeyring.ErrNotFound) {
		return Status{}
	}
	_, err = ConnectionString()
	return Status{Available: true, Stored: err == nil}
}

// Mask hides the password in a URI or key=value connection string.
func Mask(conn string) string {
	if i := strings.Index(conn, "://"); i != -1 {
		rest := conn[i+3:]
		at := strings.LastIndex(rest, "@")
		if at == -1 {
			return conn
		}
		user, _, hasPass := strings.Cut(rest[:at], ":")
		if !hasPass {
			return conn
		}
		return conn[:i+3] + user + ":****" + rest[at:]
	}

	parts := strings.Fields(conn)
	for i, part := range parts {
		if k, _, ok := strings.Cut(part, "="); ok && strings.EqualFold(k, "password") {
			parts[i] = k + "=****"
		}
	}
	return strings.Join(parts, " ")
}
