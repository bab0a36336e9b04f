// Package qcal converts qCal phantom calibration reports into typed workbook tables.
package qcal

import "log/slog"

// Options configures a conversion run.
type Options struct {
	// ProtocolNumber is attached to every table as the Protocol Number join key.
	ProtocolNumber int
	// Summary adds a statistics table over the VOI float columns.
	Summary bool
	// Logger receives progress records. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns default conversion options.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
