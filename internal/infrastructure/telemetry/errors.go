package telemetry

import "errors"

// ErrMeterNil is returned when an instrument set is built without a meter.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")
