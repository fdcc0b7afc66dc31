package log

import (
	"gopkg.in/Sirupsen/logrus.v0"
)

// Entry is the printf-style counterpart of EntryZ, for the rare messages
// whose cost doesn't matter (configuration, startup).
type Entry struct {
	mod Module
}

// materialize returns the underlying entry, with the module name and the fields
// of all registered contexts attached.
func (entry Entry) materialize() *logrus.Entry {
	fields := logrus.Fields{"_mod": entry.mod.String()}
	if len(contexts) != 0 {
		var z EntryZ
		for _, c := range contexts {
			c.AddLogContext(&z)
		}
		for i := range z.zfbuf[:z.zfidx] {
			fields[z.zfbuf[i].Key] = z.zfbuf[i].Value()
		}
	}
	return logrus.StandardLogger().WithFields(fields)
}

func (entry Entry) Warnf(format string, args ...any) {
	if entry.mod.Enabled(WarnLevel) {
		entry.materialize().Warnf(format, args...)
	}
}

func (entry Entry) Errorf(format string, args ...any) {
	if entry.mod.Enabled(ErrorLevel) {
		entry.materialize().Errorf(format, args...)
	}
}

func (entry Entry) Fatalf(format string, args ...any) {
	if entry.mod.Enabled(FatalLevel) {
		entry.materialize().Fatalf(format, args...)
	}
}
