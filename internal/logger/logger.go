// Package logger provides the leveled output sink shared by the pruner,
// the workspace resolver and the CLI.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	debugStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Logger writes colored, leveled lines. A nil *Logger discards everything.
type Logger struct {
	out     *log.Logger
	err     *log.Logger
	verbose bool
}

// New returns a Logger writing info-level lines to out and errors to errOut.
// Debug lines are only written when verbose is set.
func New(out, errOut io.Writer, verbose bool) *Logger {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = out
	}
	return &Logger{
		out:     log.New(out, "", 0),
		err:     log.New(errOut, "", 0),
		verbose: verbose,
	}
}

// Default logs to stdout/stderr the way the CLI does.
func Default(verbose bool) *Logger {
	return New(os.Stdout, os.Stderr, verbose)
}

// Discard returns a logger that drops every line.
func Discard() *Logger {
	return New(io.Discard, io.Discard, false)
}

// Verbose reports whether debug output is enabled.
func (l *Logger) Verbose() bool {
	return l != nil && l.verbose
}

func (l *Logger) Info(format string, args ...any) {
	l.print(l.outLogger(), infoStyle, format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.print(l.errLogger(), warnStyle, format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.print(l.errLogger(), errorStyle, format, args...)
}

func (l *Logger) Success(format string, args ...any) {
	l.print(l.outLogger(), successStyle, format, args...)
}

// Debug is dropped unless the logger is verbose.
func (l *Logger) Debug(format string, args ...any) {
	if !l.Verbose() {
		return
	}
	l.print(l.outLogger(), debugStyle, format, args...)
}

// Plain writes the message without styling.
func (l *Logger) Plain(format string, args ...any) {
	if out := l.outLogger(); out != nil {
		out.Print(fmt.Sprintf(format, args...))
	}
}

func (l *Logger) outLogger() *log.Logger {
	if l == nil {
		return nil
	}
	return l.out
}

func (l *Logger) errLogger() *log.Logger {
	if l == nil {
		return nil
	}
	return l.err
}

func (l *Logger) print(out *log.Logger, style lipgloss.Style, format string, args ...any) {
	if out == nil {
		return
	}
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	out.Print(style.Render(msg))
}
