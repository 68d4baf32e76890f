package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce        sync.Once
	adminRequestsTotal  *prometheus.CounterVec
	adminLatencySeconds *prometheus.HistogramVec
	adminErrorsTotal    *prometheus.CounterVec
	registrationLinks   *prometheus.CounterVec
	registrationsTotal  *prometheus.CounterVec
	uploadLatency       prometheus.Histogram
	uploadsStoredTotal  *prometheus.CounterVec
	uploadsRejected     *prometheus.CounterVec
	summaryFallbacks    prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		adminRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spmb_admin_requests_total",
			Help: "Total number of admin API requests served.",
		}, []string{"method", "route", "status"})

		adminLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "spmb_admin_latency_seconds",
			Help:    "Latency distribution for admin API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		adminErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spmb_admin_errors_total",
			Help: "Total number of error responses returned by admin endpoints.",
		}, []string{"method", "route", "status"})

		registrationLinks = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spmb_registration_links_total",
			Help: "WhatsApp hand-off links built for the public intake.",
		}, []string{"level"})

		registrationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spmb_registrations_created_total",
			Help: "Applicant records created through the panel.",
		}, []string{"level"})

		uploadLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "spmb_berkas_upload_duration_seconds",
			Help:    "Duration of berkas upload handling.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		})

		uploadsStoredTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spmb_berkas_stored_total",
			Help: "Berkas files stored, by detected MIME type.",
		}, []string{"mime"})

		uploadsRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spmb_berkas_rejected_total",
			Help: "Berkas uploads rejected, by reason.",
		}, []string{"reason"})

		summaryFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spmb_summary_fallbacks_total",
			Help: "Dashboard summaries served from the fixed fallback sentence.",
		})

		prometheus.MustRegister(
			adminRequestsTotal,
			adminLatencySeconds,
			adminErrorsTotal,
			registrationLinks,
			registrationsTotal,
			uploadLatency,
			uploadsStoredTotal,
			uploadsRejected,
			summaryFallbacks,
		)
	})
}

// AdminRequests exposes the counter for admin requests.
func AdminRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return adminRequestsTotal
}

// AdminLatency exposes the latency histogram for admin requests.
func AdminLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return adminLatencySeconds
}

// AdminErrors exposes the counter for admin error responses.
func AdminErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return adminErrorsTotal
}

// RegistrationLinks exposes the counter for public intake hand-off links.
func RegistrationLinks() *prometheus.CounterVec {
	RegisterMetrics()
	return registrationLinks
}

// RegistrationsCreated exposes the counter for applicant records created.
func RegistrationsCreated() *prometheus.CounterVec {
	RegisterMetrics()
	return registrationsTotal
}

// UploadLatency exposes the berkas upload duration histogram.
func UploadLatency() prometheus.Histogram {
	RegisterMetrics()
	return uploadLatency
}

// UploadsStored exposes the counter for stored berkas.
func UploadsStored() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadsStoredTotal
}

// UploadsRejected exposes the counter for rejected berkas uploads.
func UploadsRejected() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadsRejected
}

// SummaryFallbacks exposes the counter for summary fallback responses.
func SummaryFallbacks() prometheus.Counter {
	RegisterMetrics()
	return summaryFallbacks
}
