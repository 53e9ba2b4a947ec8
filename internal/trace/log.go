package trace

import (
	"github.com/sirupsen/logrus"
)

// LogTracer forwards span ends and points to a logrus logger at debug
// level; span begins are dropped to keep the log readable.
type LogTracer struct {
	log   *logrus.Logger
	level Level
}

// NewLogTracer creates a LogTracer.
func NewLogTracer(log *logrus.Logger, level Level) *LogTracer {
	return &LogTracer{log: log, level: level}
}

func (t *LogTracer) Emit(ev *Event) {
	if ev.Kind == KindSpanBegin || !t.level.ShouldEmit(ev.Scope) {
		return
	}
	fields := logrus.Fields{"scope": ev.Scope.String()}
	if ev.Kind == KindSpanEnd {
		fields["elapsed"] = ev.Elapsed.String()
	}
	for k, v := range ev.Extra {
		fields[k] = v
	}
	entry := t.log.WithFields(fields)
	if ev.Detail != "" {
		entry.Debugf("%s: %s", ev.Name, ev.Detail)
		return
	}
	entry.Debug(ev.Name)
}

func (t *LogTracer) Flush() error  { return nil }
func (t *LogTracer) Close() error  { return nil }
func (t *LogTracer) Level() Level  { return t.level }
func (t *LogTracer) Enabled() bool { return t.level > LevelOff }
