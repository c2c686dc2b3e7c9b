package sim

import (
	"os"

	charm "github.com/charmbracelet/log"

	"stepkit/rt"
)

// charmLogger adapts charmbracelet/log to the rt.Logger capability.
type charmLogger struct {
	l *charm.Logger
}

func newLogger() rt.Logger {
	l := charm.NewWithOptions(os.Stderr, charm.Options{
		ReportTimestamp: true,
		Prefix:          "stepkit",
	})
	if os.Getenv("STEPKIT_DEBUG") != "" {
		l.SetLevel(charm.DebugLevel)
	}
	return &charmLogger{l: l}
}

func (c *charmLogger) Info(msg string, keyvals ...any)  { c.l.Info(msg, keyvals...) }
func (c *charmLogger) Warn(msg string, keyvals ...any)  { c.l.Warn(msg, keyvals...) }
func (c *charmLogger) Error(msg string, keyvals ...any) { c.l.Error(msg, keyvals...) }
func (c *charmLogger) Diag(msg string, keyvals ...any)  { c.l.Debug(msg, keyvals...) }
