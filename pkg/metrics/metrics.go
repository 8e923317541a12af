package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
	KafkaMessagesPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_published_total",
			Help: "Number of messages published to Kafka",
		},
		[]string{"topic", "result"}, // ok|error
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of items currently in cache",
		},
	)
)

var (
	FormValidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_validations_total",
			Help: "Checkout form validations by form and outcome",
		},
		[]string{"form", "result"}, // order|buyer, valid|invalid
	)
	OrdersPlaced = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Number of accepted orders",
		},
	)
	CatalogUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_updates_total",
			Help: "Catalog snapshot replacements by outcome",
		},
		[]string{"result"}, // applied|rejected|failed
	)
	CatalogSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_products",
			Help: "Number of products in the current catalog snapshot",
		},
	)
)

// MustRegister — регистрирует все метрики; повторный вызов безопасен.
func MustRegister() {
	for _, c := range []prometheus.Collector{
		KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed, KafkaMessagesPublished,
		CacheOps, CacheSize,
		FormValidations, OrdersPlaced, CatalogUpdates, CatalogSize,
	} {
		if err := prometheus.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				panic(err)
			}
		}
	}
}
