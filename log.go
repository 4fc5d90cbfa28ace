package grover

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is shared by the pool, sampler and circuit.
var Logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix:          "grover",
	ReportTimestamp: true,
	Level:           log.InfoLevel,
})

/*
SetLogLevel changes the level of the package logger. Unknown level names leave
the logger untouched and return the parse error.
*/
func SetLogLevel(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}

	Logger.SetLevel(lvl)
	return nil
}
