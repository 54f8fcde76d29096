package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	plansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mealcart_plans_total",
		Help: "Planning requests served, by outcome.",
	}, []string{"status"})

	unavailableTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mealcart_unavailable_ingredients_total",
		Help: "Ingredients marked unavailable across all served plans.",
	})

	planDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mealcart_plan_duration_seconds",
		Help:    "End-to-end planning latency.",
		Buckets: prometheus.DefBuckets,
	})
)
