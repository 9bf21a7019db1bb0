// Package alerts prints advisory notices next to command output.
package alerts

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Level represents the severity of an alert.
type Level int

const (
	// LevelError indicates a failure or error condition.
	LevelError Level = iota
	// LevelWarning indicates a degraded but usable result.
	LevelWarning
	// LevelInfo indicates general informational messages.
	LevelInfo
)

// String returns the string representation of the alert level.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	default:
		return fmt.Sprintf("unknown(%d)", l)
	}
}

// prefix is printed before the message.
func (l Level) prefix() string {
	switch l {
	case LevelError:
		return "Error"
	case LevelWarning:
		return "Warning"
	default:
		return "Info"
	}
}

// color returns the ANSI color code for terminal output.
func (l Level) color() string {
	switch l {
	case LevelError:
		return "\033[31m" // Red
	case LevelWarning:
		return "\033[33m" // Yellow
	default:
		return "\033[36m" // Cyan
	}
}

const resetColor = "\033[0m"

// Alert is one notice.
type Alert struct {
	Level   Level
	Message string
	Err     error
}

// NewWarning creates a new warning alert.
func NewWarning(message string) *Alert {
	return &Alert{Level: LevelWarning, Message: message}
}

// NewInfo creates a new info alert.
func NewInfo(message string) *Alert {
	return &Alert{Level: LevelInfo, Message: message}
}

// WithError adds an underlying error to the alert.
func (a *Alert) WithError(err error) *Alert {
	a.Err = err
	return a
}

// String returns a string representation of the alert.
func (a *Alert) String() string {
	message := a.Level.prefix() + ": " + a.Message
	if a.Err != nil {
		message += fmt.Sprintf(": %v", a.Err)
	}
	return message
}

// Writer prints alerts, colored when the destination is a terminal.
type Writer struct {
	w        io.Writer
	useColor bool
}

// NewWriter creates a Writer for w. Color is disabled by NO_COLOR.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:        w,
		useColor: isTerminal(w) && os.Getenv("NO_COLOR") == "",
	}
}

// Write prints alert on its own line. A nil alert or empty message is skipped.
func (aw *Writer) Write(alert *Alert) error {
	if alert == nil || alert.Message == "" {
		return nil
	}
	message := alert.String()
	if aw.useColor {
		message = alert.Level.color() + message + resetColor
	}
	_, err := fmt.Fprintln(aw.w, message)
	return err
}

// Warn prints message as a warning if it is not empty.
func (aw *Writer) Warn(message string) error {
	return aw.Write(NewWarning(message))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
