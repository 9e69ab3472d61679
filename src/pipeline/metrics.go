package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// WriteMetrics exports the run summary in the node_exporter textfile format.
func WriteMetrics(path string, s Summary) error {
	reg := prometheus.NewRegistry()
	gauge := func(name, help string, v float64) {
		g := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "edsd", Name: name, Help: help})
		g.Set(v)
		reg.MustRegister(g)
	}
	gauge("files_processed", "Input spreadsheets processed by the last run.", float64(len(s.Dates)))
	gauge("charts_rendered", "Ward charts rendered by the last run.", float64(s.Charts))
	gauge("charts_embedded", "Ward charts embedded into spreadsheets by the last run.", float64(s.Embedded))
	gauge("rooms_tracked", "Rooms held in the persisted store.", float64(s.Totals.Rooms))
	gauge("readings_stored", "Readings held in the persisted store.", float64(s.Totals.Readings))
	gauge("duplicate_readings", "Room/date pairs with more than one reading.", float64(s.Duplicates))
	gauge("run_count", "Completed runs recorded in the persisted store.", float64(s.RunCount))
	gauge("last_run_duration_seconds", "Wall time of the last run.", s.Elapsed.Seconds())
	gauge("last_run_as_of_timestamp_seconds", "Reference date of the last run.", float64(s.AsOf.In(time.UTC).Unix()))
	return prometheus.WriteToTextfile(path, reg)
}
