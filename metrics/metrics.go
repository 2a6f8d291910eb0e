// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "areamap_http_requests_total",
		Help: "Total HTTP requests by route and status code",
	}, []string{"route", "status"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "areamap_http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"route"})
	AreasCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "areamap_areas_created_total",
		Help: "Total areas persisted",
	})
	AreasDeletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "areamap_areas_deleted_total",
		Help: "Total areas deleted",
	})
	StoreConnectTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "areamap_store_connect_total",
		Help: "Persistence handle connect attempts by outcome",
	}, []string{"outcome"})
	GeocodeRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "areamap_geocode_requests_total",
		Help: "Total geocode lookups",
	})
	GeocodeCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "areamap_geocode_cache_hits_total",
		Help: "Geocode lookups answered from the cache",
	})
	GeocodeFailTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "areamap_geocode_fail_total",
		Help: "Geocode lookups that failed upstream",
	})
	GeocodeDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "areamap_geocode_duration_ms",
		Help:    "Upstream geocode call duration in milliseconds",
		Buckets: []float64{10, 50, 100, 200, 500, 1000, 2000, 5000},
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(AreasCreatedTotal)
	prometheus.MustRegister(AreasDeletedTotal)
	prometheus.MustRegister(StoreConnectTotal)
	prometheus.MustRegister(GeocodeRequestsTotal)
	prometheus.MustRegister(GeocodeCacheHitsTotal)
	prometheus.MustRegister(GeocodeFailTotal)
	prometheus.MustRegister(GeocodeDurationMs)
}

// Handler serves every registered collector.
func Handler() http.Handler { return promhttp.Handler() }
