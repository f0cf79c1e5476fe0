// Package sentry wraps error reporting. With no DSN configured every
// call is a no-op, so handlers can report unconditionally.
package sentry

import (
	"time"

	sentrygo "github.com/getsentry/sentry-go"
)

var enabled bool

// Init configures the global Sentry client. An empty dsn disables
// reporting.
func Init(dsn, environment string) error {
	if dsn == "" {
		return nil
	}
	if err := sentrygo.Init(sentrygo.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
		SampleRate:  1.0,
	}); err != nil {
		return err
	}
	enabled = true
	return nil
}

func CaptureException(err error) {
	if !enabled || err == nil {
		return
	}
	sentrygo.CaptureException(err)
}

// Flush waits for buffered events to be delivered; called on shutdown.
func Flush() {
	if !enabled {
		return
	}
	sentrygo.Flush(2 * time.Second)
}
