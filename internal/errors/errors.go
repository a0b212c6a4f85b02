package errors

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/microhabit/internal/logger"
	"github.com/julianstephens/microhabit/internal/models"
	"github.com/julianstephens/microhabit/internal/storage"
	"github.com/julianstephens/microhabit/internal/tracker"
)

// Format renders an error for the terminal with an "Error: " prefix and,
// for errors the user can act on, a hint on the next line
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\n  Hint: " + hint
	}
	return msg
}

// Hint suggests a fix for well-known failures
func Hint(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidStars):
		return "ratings run from 0 (not done) to 5 stars"
	case errors.Is(err, tracker.ErrAlreadyOnboarded):
		return "run 'microhabit reset' to start over with new habits"
	case errors.Is(err, tracker.ErrInvalidSelection):
		return "run 'microhabit templates' to see the available habits"
	case errors.Is(err, storage.ErrEmbeddedCredentials):
		return "store the connection string with 'microhabit keyring set' or use ~/.pgpass"
	case strings.Contains(err.Error(), "storage not initialized"):
		return "run 'microhabit init' first"
	default:
		return ""
	}
}

// Fatal logs err and exits with status 1. A nil err is ignored.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}
