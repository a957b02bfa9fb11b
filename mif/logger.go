package mif

import (
	"fmt"
	"os"
	"time"
)

// Logger prints compact step-by-step progress for CLI runs.
type Logger struct {
	stepStart  time.Time
	totalStart time.Time
}

func NewLogger() *Logger {
	return &Logger{
		totalStart: time.Now(),
	}
}

// Step starts a processing step.
// Format: [name] param ...
func (l *Logger) Step(name string, params ...interface{}) {
	l.stepStart = time.Now()
	if len(params) > 0 {
		fmt.Printf("[%s] %v ... ", name, params[0])
	} else {
		fmt.Printf("[%s] ", name)
	}
}

// Done finishes the current step, printing the elapsed time when it is
// long enough to matter.
func (l *Logger) Done(result string) {
	elapsed := time.Since(l.stepStart)
	if elapsed > 100*time.Millisecond {
		fmt.Printf("→ %s (%.2fs)\n", result, elapsed.Seconds())
	} else {
		fmt.Printf("→ %s\n", result)
	}
}

// Total prints the overall elapsed time.
func (l *Logger) Total() {
	total := time.Since(l.totalStart)
	fmt.Printf("\n✓ total: %.2fs\n", total.Seconds())
}

// Info prints an untimed detail line.
func (l *Logger) Info(format string, args ...interface{}) {
	fmt.Printf("  • "+format+"\n", args...)
}

// Warn prints a warning line.
func (l *Logger) Warn(format string, args ...interface{}) {
	fmt.Printf("  ⚠ "+format+"\n", args...)
}

var debugEnabled = os.Getenv("DEBUG") != ""

func debug(format string, args ...interface{}) {
	if debugEnabled {
		fmt.Printf(format+"\n", args...)
	}
}
