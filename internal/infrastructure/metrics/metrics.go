package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	UserCreated   = "user_created_total"
	UserUpdated   = "user_updated_total"
	UserDeleted   = "user_deleted_total"
	UsersExported = "users_exported_total"
	Requests      = "app_requests_total"
)

func NewCounter(reg prometheus.Registerer) *prometheus.CounterVec {
	return promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "userdirectory",
			Name:      "general_counters",
		},
		[]string{"result"})
}

// Inc tolerates a nil counter so tests and tools can run without metrics.
func Inc(c *prometheus.CounterVec, result string) {
	if c != nil {
		c.WithLabelValues(result).Inc()
	}
}
