package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	reservationsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "reservations_created_total",
			Help:      "Count of reservations confirmed.",
		},
	)

	reservationsCanceled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "reservations_canceled_total",
			Help:      "Count of reservations canceled.",
		},
	)

	reservationConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "reservation_conflicts_total",
			Help:      "Count of reservations rejected because the room was unavailable.",
		},
	)

	checkinNotifications = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "checkin_notifications_total",
			Help:      "Count of check-in notification messages produced.",
		},
	)

	invoicesGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "invoices_generated_total",
			Help:      "Count of invoices issued.",
		},
	)

	occupancyReports = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "occupancy_reports_total",
			Help:      "Count of occupancy reports generated.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			reservationsCreated,
			reservationsCanceled,
			reservationConflicts,
			checkinNotifications,
			invoicesGenerated,
			occupancyReports,
		)
	})
}

func IncReservationCreated()  { reservationsCreated.Inc() }
func IncReservationCanceled() { reservationsCanceled.Inc() }
func IncReservationConflict() { reservationConflicts.Inc() }
func IncCheckInNotification() { checkinNotifications.Inc() }
func IncInvoiceGenerated()    { invoicesGenerated.Inc() }
func IncOccupancyReport()     { occupancyReports.Inc() }
