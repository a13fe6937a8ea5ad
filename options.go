package lingvo_widget

import "time"

type (
	ApplyOption func(o *options)
	options     struct {
		debug       bool
		enablePprof bool
		now         func() time.Time
		checkUpdate func() (ok bool, downloadUrl, info string)
	}
)

func defaultOpts() *options {
	return &options{
		debug:       false,
		enablePprof: true,
		now:         time.Now,
		checkUpdate: CheckUpdate,
	}
}

// WithEnablePprof mounts the pprof handlers on the local api.
func WithEnablePprof(enablePprof bool) ApplyOption {
	return func(o *options) {
		o.enablePprof = enablePprof
	}
}

func WithDebug() ApplyOption {
	return func(o *options) {
		o.debug = true
	}
}

func WithProd() ApplyOption {
	return func(o *options) {
		o.debug = false
	}
}

// WithClock decides which day "today's word" belongs to.
func WithClock(now func() time.Time) ApplyOption {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithUpdateChecker replaces the release lookup done by Run.
func WithUpdateChecker(fn func() (bool, string, string)) ApplyOption {
	return func(o *options) {
		o.checkUpdate = fn
	}
}
