package logsvc

import (
	"sync"

	"github.com/JaMeS-18-18/ForPluto/core"
)

type Entry struct {
	Level string
	Msg   string
	Args  []interface{}
}

// MemoryLogger records entries instead of printing them. Fatal does not exit.
type MemoryLogger struct {
	mu      sync.Mutex
	entries []Entry
}

var _ core.Logger = (*MemoryLogger)(nil)

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) log(level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Level: level, Msg: msg, Args: args})
}

// Entries returns the recorded entries of the given level, every entry when level is empty.
func (l *MemoryLogger) Entries(level string) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	res := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		if level == "" || e.Level == level {
			res = append(res, e)
		}
	}
	return res
}

func (l *MemoryLogger) Debug(msg string, args ...interface{}) { l.log("DEBUG", msg, args) }
func (l *MemoryLogger) Info(msg string, args ...interface{})  { l.log("INFO", msg, args) }
func (l *MemoryLogger) Warn(msg string, args ...interface{})  { l.log("WARN", msg, args) }
func (l *MemoryLogger) Error(msg string, args ...interface{}) { l.log("ERROR", msg, args) }
func (l *MemoryLogger) Fatal(msg string, args ...interface{}) { l.log("FATAL", msg, args) }
