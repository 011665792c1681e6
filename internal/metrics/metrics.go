// Package metrics exposes Prometheus counters for the scrape and delivery
// pipeline. Counters are process-global; the bot has no other shared state.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

var (
	PagesFetched = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bot_pages_fetched_total",
		Help: "Total number of content pages successfully fetched",
	})
	BytesFetched = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bot_bytes_fetched_total",
		Help: "Total bytes downloaded from the content host",
	})
	FetchErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bot_fetch_errors_total",
		Help: "Total number of failed content fetches",
	})
	FragmentsDelivered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bot_fragments_delivered_total",
		Help: "Total number of detail-view message fragments delivered",
	})
	UpdatesHandled = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bot_updates_handled_total",
		Help: "Total number of Telegram updates handled",
	})
)

func init() {
	prometheus.MustRegister(PagesFetched, BytesFetched, FetchErrors, FragmentsDelivered, UpdatesHandled)
}

// Handler returns the HTTP handler for the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// CounterValue reads the current value of a counter, used by the /stats command.
func CounterValue(c prometheus.Counter) float64 {
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}
