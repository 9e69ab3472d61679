// Package runlog is the leveled console logger shared by every stage of a report run.
package runlog

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
)

// LogLevel orders messages from chatty to severe.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// levelTag is how a level is printed in front of a message.
type levelTag struct {
	text  string
	color *color.Color
}

var tags = [...]levelTag{
	LevelDebug: {"[DEBUG]", color.New(color.Faint)},
	LevelInfo:  {"[INFO]", color.New(color.FgCyan)},
	LevelWarn:  {"[WARN]", color.New(color.FgYellow)},
	LevelError: {"[ERROR]", color.New(color.FgRed, color.Bold)},
}

// accepted --log-level values
var levelNames = map[string]LogLevel{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

var threshold atomic.Int32

func init() { threshold.Store(int32(LevelInfo)) }

// stderr, stamped to the microsecond so phase timings line up with the progress prints
var baseLogger = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds)

// SetLogLevel switches the threshold by name; an unrecognised name leaves it as is.
func SetLogLevel(s string) {
	if l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		threshold.Store(int32(l))
	}
}

// GetLogLevel reports the current threshold.
func GetLogLevel() LogLevel { return LogLevel(threshold.Load()) }

func logf(l LogLevel, format string, args ...interface{}) {
	if l < GetLogLevel() {
		return
	}
	msg := format
	// a message passed without args is printed verbatim; score lines can carry '%'
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	tag := tags[l]
	baseLogger.Print(tag.color.Sprint(tag.text) + " " + msg)
}

func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// TimeTrack is meant for defer: it logs at debug level how long label ran since start.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}
