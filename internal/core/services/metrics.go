package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// transfersTotal counts ledger entries by type and final status. Failed
// transfers include entries failed by the stale-pending sweeper.
var transfersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "cwa",
	Subsystem: "ledger",
	Name:      "transfers_total",
	Help:      "Ledger entries recorded, labelled by type and final status.",
}, []string{"type", "status"})

// stalePendingSwept counts PENDING entries the sweeper pushed to FAILED.
var stalePendingSwept = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "cwa",
	Subsystem: "ledger",
	Name:      "stale_pending_swept_total",
	Help:      "PENDING ledger entries marked FAILED by the stale-pending sweeper.",
})
