package control

import (
	"github.com/tsawler/formctl/internal/logger"
	"github.com/tsawler/formctl/model"
)

// Options holds the collaborators and settings of a Control.
type Options struct {
	// Format is used for placeholders and when a properties patch
	// normalizes a zone
	Format model.FormatOptions

	Logger logger.Logger

	// External UI; nil members are skipped
	Picker  Picker
	Surface ShadowSurface
	Toolbar Toolbar

	// Scheduler receives deferred notifications. Default: an internal
	// queue drained by Flush
	Scheduler Scheduler

	// CheckRuns verifies run contiguity and placeholder exclusivity after
	// every mutating operation and logs violations as warnings
	CheckRuns bool
}

// Option configures a Control
type Option func(*Options)

// defaultOptions returns the default control options.
func defaultOptions() Options {
	return Options{
		Format: model.DefaultFormatOptions(),
		Logger: logger.Nop(),
	}
}

// WithFormatOptions sets bracket and placeholder settings.
func WithFormatOptions(opts model.FormatOptions) Option {
	return func(o *Options) {
		o.Format = opts
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithPicker sets the popup surface used by select and date controls.
func WithPicker(p Picker) Option {
	return func(o *Options) {
		o.Picker = p
	}
}

// WithShadowSurface sets the surface that paints shadow boxes.
func WithShadowSurface(s ShadowSurface) Option {
	return func(o *Options) {
		o.Surface = s
	}
}

// WithToolbar sets the toolbar attached to the active control.
func WithToolbar(t Toolbar) Option {
	return func(o *Options) {
		o.Toolbar = t
	}
}

// WithScheduler replaces the internal notification queue.
func WithScheduler(s Scheduler) Option {
	return func(o *Options) {
		o.Scheduler = s
	}
}

// WithRunChecks enables the run consistency check. It walks every zone
// after each mutation, so it is meant for debug builds.
func WithRunChecks(enabled bool) Option {
	return func(o *Options) {
		o.CheckRuns = enabled
	}
}
