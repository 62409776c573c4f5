package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chatsync"

// Metrics of the chat backend. A nil *Metrics records nothing.
type Metrics struct {
	messagesCreated  prometheus.Counter
	messagesRefused  *prometheus.CounterVec
	messagesCensored prometheus.Counter
	liveSubscribers  prometheus.Gauge
	slowSubscribers  prometheus.Counter
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		messagesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_created_total",
			Help:      "Messages stored and broadcast.",
		}),
		messagesRefused: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_refused_total",
			Help:      "Messages refused before storage, by reason.",
		}, []string{"reason"}),
		messagesCensored: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_censored_total",
			Help:      "Messages with at least one censored word.",
		}),
		liveSubscribers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_subscribers",
			Help:      "Open OnCreateMessage streams.",
		}),
		slowSubscribers: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slow_subscribers_total",
			Help:      "Streams closed because the subscriber could not keep up.",
		}),
	}
}

func (m *Metrics) MessageCreated() {
	if m != nil {
		m.messagesCreated.Inc()
	}
}

func (m *Metrics) MessageRefused(reason string) {
	if m != nil {
		m.messagesRefused.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) MessageCensored() {
	if m != nil {
		m.messagesCensored.Inc()
	}
}

func (m *Metrics) SubscriberJoined() {
	if m != nil {
		m.liveSubscribers.Inc()
	}
}

func (m *Metrics) SubscriberLeft() {
	if m != nil {
		m.liveSubscribers.Dec()
	}
}

func (m *Metrics) SubscriberTooSlow() {
	if m != nil {
		m.slowSubscribers.Inc()
	}
}

// Handler serves /metrics from gatherer and a /healthz liveness check.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{\"status\":\"ok\"}"))
	})
	return mux
}
