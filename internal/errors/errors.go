package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/alpha/internal/logger"
)

// StoreError marks a failed store operation. The operation was not applied
// and the caller may keep showing its previous snapshot and try again.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Store wraps err as a StoreError for op. A nil err stays nil and an existing
// StoreError is returned unchanged.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if stderrors.As(err, &se) {
		return err
	}
	logger.Error("Store operation failed", "op", op, "error", err)
	return &StoreError{Op: op, Err: err}
}

// IsStore reports whether err came from a failed store operation.
func IsStore(err error) bool {
	var se *StoreError
	return stderrors.As(err, &se)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...any) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Transient renders a store failure for display next to stale data.
func Transient(err error) string {
	var se *StoreError
	if stderrors.As(err, &se) {
		return fmt.Sprintf("Could not %s, nothing was changed: %v", se.Op, se.Err)
	}
	return Format(err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
