package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	votesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devflow_votes_total",
			Help: "Votes cast, by target type and resulting state",
		},
		[]string{"target", "state"},
	)

	collectionTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devflow_collection_toggles_total",
			Help: "Collection toggles, by resulting saved state",
		},
		[]string{"saved"},
	)
)
