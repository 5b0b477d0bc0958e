package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Allegation label constants.
const (
	AllegationValue   = "Alleged" // AllegationValue marks a record with a doping note
	NoAllegationValue = "Clean"   // NoAllegationValue marks a record without one
)

// Color variables for console output. They mirror the chart palette.
var (
	AllegationColor   = color.New(color.FgMagenta, color.Bold) // medium violet red on the chart
	NoAllegationColor = color.New(color.FgCyan)                // dark cyan on the chart
)

// GetPlainLabel returns a plain text label for the allegation flag.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(hasAllegation bool) string {
	if hasAllegation {
		return AllegationValue
	}
	return NoAllegationValue
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(hasAllegation bool) string {
	text := GetPlainLabel(hasAllegation)
	if hasAllegation {
		return AllegationColor.Sprint(text)
	}
	return NoAllegationColor.Sprint(text)
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// LogInfo writes a progress line to stderr so stdout stays clean for chart output.
func LogInfo(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for dataset caching.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".racechart_cache.db"
	}
	return filepath.Join(homeDir, ".racechart_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for render history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".racechart_history.db"
	}
	return filepath.Join(homeDir, ".racechart_history.db")
}

// TruncateText shortens text to maxWidth runes with an ellipsis suffix.
// Requires maxWidth > 3 to leave room for the "..." and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// IsRemoteSource reports whether the source is fetched over HTTP.
func IsRemoteSource(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
