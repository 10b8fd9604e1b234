package service

import "time"

// Metrics receives counters from the services. observability.Metrics is the
// Prometheus implementation; NopMetrics is used when none is configured.
type Metrics interface {
	ReadingIngested(source string)
	ReadingRejected(source, reason string)
	PersistFailed()
	WastageDetected(zone string)
	SimulationTick(sensors int, took time.Duration)
	DatasetIngested(valid, invalid int)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) ReadingIngested(string)            {}
func (NopMetrics) ReadingRejected(string, string)    {}
func (NopMetrics) PersistFailed()                    {}
func (NopMetrics) WastageDetected(string)            {}
func (NopMetrics) SimulationTick(int, time.Duration) {}
func (NopMetrics) DatasetIngested(int, int)          {}
