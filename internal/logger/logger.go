// Package logger is a small tagged console logger with ANSI colors.
package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

func colorize(color, s string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return s
	}
	return color + s + reset
}

func emit(color, level, tag, msg string) {
	ts := time.Now().Format("15:04:05")
	fmt.Printf("%s %s %s %s\n",
		colorize(dim, ts),
		colorize(color, fmt.Sprintf("%-7s", level)),
		colorize(bold, fmt.Sprintf("[%s]", tag)),
		msg)
}

// Info logs an informational message under a tag.
func Info(tag, msg string) { emit(cyan, "INFO", tag, msg) }

// Success logs a completed-step message under a tag.
func Success(tag, msg string) { emit(green, "OK", tag, msg) }

// Warn logs a warning under a tag.
func Warn(tag, msg string) { emit(yellow, "WARN", tag, msg) }

// Error logs an error under a tag.
func Error(tag, msg string) { emit(red, "ERROR", tag, msg) }

// Banner prints the startup banner with the build version.
func Banner(version string) {
	if version == "" {
		version = "dev"
	}
	fmt.Println(colorize(bold, "ed-rscan - route scanner for Elite Dangerous"))
	fmt.Printf("%s\n", colorize(dim, "version "+version))
}

// Section prints a visual divider with a title.
func Section(title string) {
	fmt.Printf("\n%s\n", colorize(bold, "── "+title+" ──"))
}

// Stats prints a single aligned key/value statistic.
func Stats(key string, value interface{}) {
	fmt.Printf("  %-24s %v\n", key, value)
}
