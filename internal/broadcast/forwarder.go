package broadcast

import (
	"context"

	"green_index/internal/logger"
	"green_index/internal/models"
)

// Sink receives every live update. RedisSink is the production one.
type Sink interface {
	WriteReading(ctx context.Context, r models.NormalizedReading) error
	WriteAlert(ctx context.Context, a models.WastageAlert) error
	WriteDataset(ctx context.Context, rows []models.CSVRow) error
}

// Streams are the buffered subscriptions a Forwarder drains. A nil channel
// is simply never selected.
type Streams struct {
	Readings <-chan models.NormalizedReading
	Alerts   <-chan models.WastageAlert
	Dataset  <-chan []models.CSVRow
}

type Forwarder struct {
	sink Sink
	log  *logger.Logger
}

func NewForwarder(sink Sink, log *logger.Logger) *Forwarder {
	if log == nil {
		log = logger.Nop()
	}
	return &Forwarder{sink: sink, log: log}
}

// Run forwards updates until ctx is done or every stream is closed. Sink
// failures are logged and do not stop the loop.
func (f *Forwarder) Run(ctx context.Context, in Streams) {
	readings, alerts, dataset := in.Readings, in.Alerts, in.Dataset
	for readings != nil || alerts != nil || dataset != nil {
		select {
		case <-ctx.Done():
			return
		case r, ok := <-readings:
			if !ok {
				readings = nil
				continue
			}
			if err := f.sink.WriteReading(ctx, r); err != nil {
				f.log.Warnw("broadcast_reading_failed", "sensor_id", r.SensorID, "err", err)
			}
		case a, ok := <-alerts:
			if !ok {
				alerts = nil
				continue
			}
			if err := f.sink.WriteAlert(ctx, a); err != nil {
				f.log.Warnw("broadcast_alert_failed", "alert_id", a.ID, "err", err)
			}
		case rows, ok := <-dataset:
			if !ok {
				dataset = nil
				continue
			}
			if err := f.sink.WriteDataset(ctx, rows); err != nil {
				f.log.Warnw("broadcast_dataset_failed", "rows", len(rows), "err", err)
			}
		}
	}
}
