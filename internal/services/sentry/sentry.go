// Package sentry wraps error reporting. When SENTRY_DSN is unset every
// method is a no-op, so handlers can report unconditionally.
package sentry

import (
	"log"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
)

// Re-exported so callers don't need a second sentry import for scopes.
type (
	Level = sentry.Level
	Scope = sentry.Scope
)

const (
	LevelWarning = sentry.LevelWarning
	LevelError   = sentry.LevelError
)

// SentryService provides error tracking for the service.
type SentryService struct {
	initialized bool
}

// NewSentryService creates and initializes the Sentry client.
func NewSentryService() *SentryService {
	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" {
		log.Println("SENTRY_DSN not set, Sentry disabled")
		return &SentryService{initialized: false}
	}

	environment := os.Getenv("SENTRY_ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		TracesSampleRate: 1.0,
		EnableTracing:    true,
	})
	if err != nil {
		log.Printf("Sentry initialization failed: %v", err)
		return &SentryService{initialized: false}
	}

	log.Println("Sentry initialized successfully")
	return &SentryService{initialized: true}
}

// CaptureException captures an error and sends it to Sentry.
func (s *SentryService) CaptureException(err error) {
	if !s.initialized {
		return
	}
	sentry.CaptureException(err)
}

// CaptureMessage captures a message and sends it to Sentry.
func (s *SentryService) CaptureMessage(message string) {
	if !s.initialized {
		return
	}
	sentry.CaptureMessage(message)
}

// Flush waits for buffered events to be sent.
func (s *SentryService) Flush(timeout time.Duration) bool {
	if !s.initialized {
		return true
	}
	return sentry.Flush(timeout)
}

// Close flushes and closes the Sentry client.
func (s *SentryService) Close() {
	s.Flush(2 * time.Second)
}

// WithScope executes a function with a new Sentry scope.
func (s *SentryService) WithScope(fn func(scope *Scope)) {
	if !s.initialized {
		return
	}
	sentry.WithScope(fn)
}
