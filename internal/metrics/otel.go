package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/vfirsov/kernel/contracts"
)

// BridgeToOTel subscribes to every event on bus and republishes it as
// an OTel Float64Histogram recording, tagged with the event name and
// its own tags. Additive observability: the bus remains the source of
// truth, this only mirrors it onto a configured meter. Grounded on
// SWARM's DAGEngine/OPAEngine OTel instrumentation pattern of wrapping
// counters/histograms obtained from a shared meter.
func BridgeToOTel(bus contracts.MetricBus, meter metric.Meter) error {
	hist, err := meter.Float64Histogram("kernel_metric_value")
	if err != nil {
		return err
	}

	bus.On("*", func(e contracts.MetricEvent) {
		attrs := make([]attribute.KeyValue, 0, len(e.Tags)+1)
		attrs = append(attrs, attribute.String("metric", e.Name))
		for k, v := range e.Tags {
			attrs = append(attrs, attribute.String(k, v))
		}
		hist.Record(context.Background(), e.Value, metric.WithAttributes(attrs...))
	})
	return nil
}
