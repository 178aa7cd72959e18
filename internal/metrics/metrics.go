package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BikesAddedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bikestore_bikes_added_total",
		Help: "Total number of bikes added to the inventory.",
	})

	ClientsRegisteredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bikestore_clients_registered_total",
		Help: "Total number of clients successfully registered.",
	})

	RentalsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bikestore_rentals_created_total",
		Help: "Total number of rental records created (one per bike leg).",
	})

	SettlementsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bikestore_settlements_total",
		Help: "Total number of completed settlements.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bikestore_operation_errors_total",
		Help: "Total number of business-rule violations by operation.",
	},
		[]string{"operation"},
	)

	AvailableBikes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bikestore_available_bikes",
		Help: "Current number of bikes available for rental.",
	})
)
