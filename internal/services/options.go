package services

import (
	"time"

	"github.com/dmitrijs2005/wordbook/internal/logging"
)

type options struct {
	now func() time.Time
	log logging.Logger
}

// Option customizes a service.
type Option func(*options)

// WithClock overrides the time source used for ids, timestamps and the
// default day.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLogger sets the logger of services that log (backup, enrichment).
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.log = l }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, fn := range opts {
		fn(&o)
	}
	if o.log == nil {
		o.log = logging.Discard()
	}
	return o
}

// timestamp is the clock reading stored in documents.
func (o options) timestamp() time.Time {
	return o.now().UTC().Truncate(time.Millisecond)
}
