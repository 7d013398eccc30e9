package hwlog

import (
	"fmt"

	logrus "gopkg.in/Sirupsen/logrus.v0"
)

// Entry is a lazily-built structured log line for a given Module and level.
// It is nullable in spirit: none of its methods do any work if the level is
// disabled for the module, so hot paths (PPU/CPU inner loops) can log
// unconditionally without the caller checking first.
type Entry struct {
	mod    Module
	level  logrus.Level
	msg    string
	fields logrus.Fields
	on     bool
}

func newEntry(mod Module, level logrus.Level, msg string) Entry {
	on := !isDisabled()
	if on && level == logrus.DebugLevel {
		on = mod.debugEnabled()
	}
	return Entry{mod: mod, level: level, msg: msg, on: on}
}

// DebugZ starts a debug-level structured log entry for mod.
func (mod Module) DebugZ(msg string) Entry { return newEntry(mod, logrus.DebugLevel, msg) }

// InfoZ starts an info-level structured log entry for mod.
func (mod Module) InfoZ(msg string) Entry { return newEntry(mod, logrus.InfoLevel, msg) }

// WarnZ starts a warn-level structured log entry for mod.
func (mod Module) WarnZ(msg string) Entry { return newEntry(mod, logrus.WarnLevel, msg) }

// ErrorZ starts an error-level structured log entry for mod.
func (mod Module) ErrorZ(msg string) Entry { return newEntry(mod, logrus.ErrorLevel, msg) }

// PanicZ starts a panic-level structured log entry; End() panics after
// logging.
func (mod Module) PanicZ(msg string) Entry { return newEntry(mod, logrus.PanicLevel, msg) }

func (e Entry) with(key string, val any) Entry {
	if !e.on {
		return e
	}
	if e.fields == nil {
		e.fields = make(logrus.Fields, 4)
	}
	e.fields[key] = val
	return e
}

func (e Entry) Hex8(key string, val uint8) Entry   { return e.with(key, fmt.Sprintf("%02x", val)) }
func (e Entry) Hex16(key string, val uint16) Entry { return e.with(key, fmt.Sprintf("%04x", val)) }
func (e Entry) Hex32(key string, val uint32) Entry { return e.with(key, fmt.Sprintf("%08x", val)) }
func (e Entry) String(key string, val string) Entry { return e.with(key, val) }
func (e Entry) Bool(key string, val bool) Entry     { return e.with(key, val) }
func (e Entry) Int(key string, val int) Entry       { return e.with(key, val) }
func (e Entry) Uint16(key string, val uint16) Entry { return e.with(key, val) }
func (e Entry) Uint64(key string, val uint64) Entry { return e.with(key, val) }
func (e Entry) Error(key string, err error) Entry {
	if err == nil {
		return e.with(key, "<nil>")
	}
	return e.with(key, err.Error())
}

// End emits the log entry, if enabled.
func (e Entry) End() {
	if !e.on {
		return
	}
	le := logrus.StandardLogger().WithField("mod", e.mod.String())
	if e.fields != nil {
		le = le.WithFields(e.fields)
	}
	switch e.level {
	case logrus.DebugLevel:
		le.Debug(e.msg)
	case logrus.InfoLevel:
		le.Info(e.msg)
	case logrus.WarnLevel:
		le.Warn(e.msg)
	case logrus.ErrorLevel:
		le.Error(e.msg)
	case logrus.PanicLevel:
		le.Panic(e.msg)
	}
}
