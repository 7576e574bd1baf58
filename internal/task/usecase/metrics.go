package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	changeEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_change_events_total",
			Help: "Change events received from the realtime channel",
		},
		[]string{"type", "result"},
	)

	mirroredTasks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "task_mirrored_tasks",
			Help: "Number of tasks currently held in the local mirror",
		},
	)
)
