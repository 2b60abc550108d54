package server

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mastercactapus/gcheck/check"
	"github.com/mastercactapus/gcheck/report"
)

var (
	analysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gcheck",
			Subsystem: "server",
			Name:      "analyses_total",
			Help:      "Total analyses run, by verdict.",
		},
		[]string{"verdict"},
	)

	issuesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gcheck",
			Subsystem: "server",
			Name:      "issues_total",
			Help:      "Total issues found, by severity.",
		},
		[]string{"severity"},
	)

	watchEventsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gcheck",
			Subsystem: "server",
			Name:      "watch_events_total",
			Help:      "File change events picked up by the watcher.",
		},
	)
)

func observe(res *check.Result) {
	analysesTotal.WithLabelValues(strings.ToLower(report.Verdict(res))).Inc()
	issuesTotal.WithLabelValues(string(check.SeverityError)).Add(float64(res.Errors()))
	issuesTotal.WithLabelValues(string(check.SeverityWarning)).Add(float64(res.Warnings()))
}
