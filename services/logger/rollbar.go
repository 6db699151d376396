package logsvc

import (
	"fmt"
	"log"
	"os"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/classroom/core"
	"github.com/trezcool/classroom/core/user"
)

// RollbarLogger reports to Rollbar and echoes everything to std.
type RollbarLogger struct {
	std    *log.Logger
	client *rollbar.Client
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	host, _ := os.Hostname()
	client := rollbar.New(conf.RollbarToken, conf.Env, conf.Build, host, conf.WorkDir)
	client.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std, client: client}
}

// New returns the Logger for conf: Rollbar outside of debug mode when a token is set, std otherwise.
func New(std *log.Logger, conf *core.Config) core.Logger {
	if conf.Debug || conf.TestMode || conf.RollbarToken == "" {
		return NewStdLogger(std)
	}
	l := NewRollbarLogger(std, conf)
	l.Enable(true)
	return l
}

func (l *RollbarLogger) Enable(enabled bool) {
	l.client.SetEnabled(enabled)
}

// Close flushes pending reports.
func (l *RollbarLogger) Close() error {
	return l.client.Close()
}

// report sends msg at level. The first error in args is reported with its stack, maps are merged
// into the extras and the first user.User is set as the person.
func (l *RollbarLogger) report(level, msg string, args []interface{}) {
	var (
		person *user.User
		err    error
	)
	extras := make(map[string]interface{})
	for i, arg := range args {
		switch a := arg.(type) {
		case user.User:
			if person == nil {
				person = &a
			}
		case error:
			if err == nil {
				err = a
			} else {
				extras[fmt.Sprintf("error_%d", i)] = a.Error()
			}
		case map[string]interface{}:
			for k, v := range a {
				extras[k] = v
			}
		default:
			extras[fmt.Sprintf("arg_%d", i)] = a
		}
	}
	if person != nil {
		l.client.SetPerson(person.ID, person.FullName(), person.Email)
	} else {
		l.client.ClearPerson()
	}

	if err != nil {
		extras["message"] = msg
		l.client.ErrorWithExtras(level, err, extras)
	} else {
		l.client.MessageWithExtras(level, msg, extras)
	}
	write(l.std, levelNames[level], msg, args)
}

var levelNames = map[string]string{
	rollbar.DEBUG: "DEBUG",
	rollbar.INFO:  "INFO",
	rollbar.WARN:  "WARN",
	rollbar.ERR:   "ERROR",
	rollbar.CRIT:  "FATAL",
}

func (l *RollbarLogger) Debug(msg string, args ...interface{}) { l.report(rollbar.DEBUG, msg, args) }
func (l *RollbarLogger) Info(msg string, args ...interface{})  { l.report(rollbar.INFO, msg, args) }
func (l *RollbarLogger) Warn(msg string, args ...interface{})  { l.report(rollbar.WARN, msg, args) }
func (l *RollbarLogger) Error(msg string, args ...interface{}) { l.report(rollbar.ERR, msg, args) }

func (l *RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.report(rollbar.CRIT, msg, args)
	l.client.Wait()
	l.std.Fatal(msg)
}
