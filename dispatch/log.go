package dispatch

import (
	"fmt"

	"github.com/machinefabric/plugkit-go/host"
)

// Logger forwards leveled records to the host's log sink, prefixed with
// the plugin id and the dispatch correlation id. Debug records are also
// buffered locally; when a critical record is emitted the buffer is
// replayed at warning level, so the failure's debug trail lands in the
// host log without debug logging being enabled.
type Logger struct {
	sink     host.LogSink
	prefix   string
	debugBuf []string
}

func newLogger(sink host.LogSink, pluginID, dispatchID string) *Logger {
	return &Logger{
		sink:   sink,
		prefix: fmt.Sprintf("[%s] [%s] ", pluginID, dispatchID),
	}
}

func (l *Logger) log(level host.Level, format string, args ...any) {
	message := l.prefix + fmt.Sprintf(format, args...)
	l.sink.Log(message, level)

	if level == host.LevelDebug {
		l.debugBuf = append(l.debugBuf, message)
	} else if level == host.LevelCritical && len(l.debugBuf) > 0 {
		l.sink.Log("###### debug ######", host.LevelWarning)
		for _, buffered := range l.debugBuf {
			l.sink.Log(buffered, host.LevelWarning)
		}
		l.sink.Log("###### debug ######", host.LevelWarning)
	}
}

// Debugf logs at debug severity.
func (l *Logger) Debugf(format string, args ...any) {
	l.log(host.LevelDebug, format, args...)
}

// Infof logs at info severity.
func (l *Logger) Infof(format string, args ...any) {
	l.log(host.LevelInfo, format, args...)
}

// Warnf logs at warning severity.
func (l *Logger) Warnf(format string, args ...any) {
	l.log(host.LevelWarning, format, args...)
}

// Errorf logs at error severity.
func (l *Logger) Errorf(format string, args ...any) {
	l.log(host.LevelError, format, args...)
}

// Criticalf logs at critical severity and replays the buffered debug
// trail.
func (l *Logger) Criticalf(format string, args ...any) {
	l.log(host.LevelCritical, format, args...)
}

// DebugTrail returns the buffered debug records of this dispatch.
func (l *Logger) DebugTrail() []string {
	return l.debugBuf
}
