package logsvc

import (
	"log"

	"github.com/trezcool/classroom/core"
	"github.com/trezcool/classroom/core/user"
)

// StdLogger writes to a *log.Logger only.
type StdLogger struct {
	std *log.Logger
}

var _ core.Logger = (*StdLogger)(nil)

func NewStdLogger(std *log.Logger) *StdLogger {
	return &StdLogger{std: std}
}

func (l StdLogger) Debug(msg string, args ...interface{}) { write(l.std, "DEBUG", msg, args) }
func (l StdLogger) Info(msg string, args ...interface{})  { write(l.std, "INFO", msg, args) }
func (l StdLogger) Warn(msg string, args ...interface{})  { write(l.std, "WARN", msg, args) }
func (l StdLogger) Error(msg string, args ...interface{}) { write(l.std, "ERROR", msg, args) }

func (l StdLogger) Fatal(msg string, args ...interface{}) {
	write(l.std, "FATAL", msg, args)
	l.std.Fatal(msg)
}

func write(std *log.Logger, level, msg string, args []interface{}) {
	std.Printf("%s: %s\n", level, msg)
	for _, arg := range args {
		if usr, ok := arg.(user.User); ok {
			std.Printf("  user: %s <%s>\n", usr.ID, usr.Email)
			continue
		}
		std.Printf("  %+v\n", arg)
	}
}
