package multisig

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	multisigsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "quorum",
		Subsystem: "multisig",
		Name:      "created_total",
		Help:      "Total number of registries created",
	})
	transactionsProposed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "quorum",
		Subsystem: "multisig",
		Name:      "proposed_total",
		Help:      "Total number of transactions proposed",
	})
	transactionsApproved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "quorum",
		Subsystem: "multisig",
		Name:      "approved_total",
		Help:      "Total number of delivered approvals, repeated approvals included",
	})
	transactionsExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quorum",
		Subsystem: "multisig",
		Name:      "executed_total",
		Help:      "Total number of execution attempts of approved transactions, by result",
	}, []string{"result"})
)

func observeExecution(err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	transactionsExecuted.WithLabelValues(result).Inc()
}
