package ui

import (
	"sync/atomic"

	"github.com/pterm/pterm"
)

// verbosity levels, as accepted on the command line
const (
	VerbositySilent = 0
	VerbosityNormal = 1
	VerbosityDetail = 2
	VerbosityTrace  = 3
)

var verbosity atomic.Int32

func init() {
	verbosity.Store(VerbosityNormal)
}

// SetVerbosity sets the global log level. Values above VerbosityTrace are
// treated as VerbosityTrace, negative values as VerbositySilent.
func SetVerbosity(level int) {
	if level < VerbositySilent {
		level = VerbositySilent
	}
	if level > VerbosityTrace {
		level = VerbosityTrace
	}
	verbosity.Store(int32(level))
	pterm.PrintDebugMessages = level >= VerbosityDetail
}

func Verbosity() int {
	return int(verbosity.Load())
}

// IsVerbose reports whether messages of the given level are printed.
func IsVerbose(level int) bool {
	return Verbosity() >= level
}

func Printf(format string, a ...interface{}) {
	pterm.Printf(format, a...)
}

func Printfln(format string, a ...interface{}) {
	pterm.Printfln(format, a...)
}

// Trace prints bus level traffic, only at the highest verbosity.
func Trace(format string, a ...interface{}) {
	if !IsVerbose(VerbosityTrace) {
		return
	}
	pterm.Debug.Printfln(format, a...)
}

func Debug(format string, a ...interface{}) {
	if !IsVerbose(VerbosityDetail) {
		return
	}
	pterm.Debug.Printfln(format, a...)
}

func Info(format string, a ...interface{}) {
	if !IsVerbose(VerbosityNormal) {
		return
	}
	pterm.Info.Printfln(format, a...)
}

func Success(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

func Warning(format string, a ...interface{}) {
	if !IsVerbose(VerbosityNormal) {
		return
	}
	pterm.Warning.Printfln(format, a...)
}

func Error(format string, a ...interface{}) {
	if !IsVerbose(VerbosityNormal) {
		return
	}
	pterm.Error.Printfln(format, a...)
}

// Fatal prints the message regardless of verbosity and exits with code 1.
func Fatal(format string, a ...interface{}) {
	pterm.Fatal.Printfln(format, a...)
}
