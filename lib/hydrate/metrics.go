package hydrate

import "github.com/VictoriaMetrics/metrics"

// Process-wide counters for persistence health. Exposed through the
// metrics package's default set; applications that serve metrics pick them
// up automatically.
var (
	hydrationsTotal     = metrics.NewCounter("rehydrate_hydrations_total")
	writesTotal         = metrics.NewCounter("rehydrate_writes_total")
	writeFailuresTotal  = metrics.NewCounter("rehydrate_write_failures_total")
	encodeFailuresTotal = metrics.NewCounter("rehydrate_encode_failures_total")
)
