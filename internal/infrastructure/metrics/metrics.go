// Package metrics exposes Prometheus instrumentation for membership rules,
// batch jobs and HTTP traffic. A nil *Metrics is valid and records nothing.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var durationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

type Metrics struct {
	AgeLimitEvaluations *prometheus.CounterVec
	QuotaRejections     *prometheus.CounterVec
	Promotions          prometheus.Counter
	ImportRows          *prometheus.CounterVec
	ImportDuration      prometheus.Histogram
	PaymentsRecorded    prometheus.Counter
	BatchJobChanged     *prometheus.CounterVec
	BatchJobDuration    *prometheus.HistogramVec
	BatchJobFailures    *prometheus.CounterVec
	HTTPRequests        *prometheus.HistogramVec
}

// New registers every metric on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		AgeLimitEvaluations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "parlour_age_limit_evaluations_total",
			Help: "Age-limit evaluations by outcome",
		}, []string{"result"}),
		QuotaRejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "parlour_quota_rejections_total",
			Help: "Members rejected because the plan quota was reached or the type is not covered",
		}, []string{"member_type"}),
		Promotions: f.NewCounter(prometheus.CounterOpts{
			Name: "parlour_promotions_total",
			Help: "Extended members promoted to main member",
		}),
		ImportRows: f.NewCounterVec(prometheus.CounterOpts{
			Name: "parlour_import_rows_total",
			Help: "Bulk import rows by outcome",
		}, []string{"result"}),
		ImportDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "parlour_import_duration_seconds",
			Help:    "Duration of bulk member imports",
			Buckets: durationBuckets,
		}),
		PaymentsRecorded: f.NewCounter(prometheus.CounterOpts{
			Name: "parlour_payments_recorded_total",
			Help: "Payments recorded",
		}),
		BatchJobChanged: f.NewCounterVec(prometheus.CounterOpts{
			Name: "parlour_batch_job_changed_total",
			Help: "Rows changed by batch jobs",
		}, []string{"job"}),
		BatchJobDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "parlour_batch_job_duration_seconds",
			Help:    "Duration of batch job runs",
			Buckets: durationBuckets,
		}, []string{"job"}),
		BatchJobFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "parlour_batch_job_item_failures_total",
			Help: "Items skipped by batch jobs after an error",
		}, []string{"job"}),
		HTTPRequests: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "parlour_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: durationBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) ObserveAgeLimit(exceeded bool) {
	if m == nil {
		return
	}
	result := "within"
	if exceeded {
		result = "exceeded"
	}
	m.AgeLimitEvaluations.WithLabelValues(result).Inc()
}

func (m *Metrics) IncQuotaRejection(memberType string) {
	if m == nil {
		return
	}
	m.QuotaRejections.WithLabelValues(memberType).Inc()
}

func (m *Metrics) IncPromotion() {
	if m == nil {
		return
	}
	m.Promotions.Inc()
}

// ObserveImport records row outcomes and the duration since start.
func (m *Metrics) ObserveImport(start time.Time, accepted, rejected int) {
	if m == nil {
		return
	}
	m.ImportRows.WithLabelValues("accepted").Add(float64(accepted))
	m.ImportRows.WithLabelValues("rejected").Add(float64(rejected))
	m.ImportDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncPaymentRecorded() {
	if m == nil {
		return
	}
	m.PaymentsRecorded.Inc()
}

// ObserveBatchJob records one job run.
func (m *Metrics) ObserveBatchJob(job string, start time.Time, changed, failed int) {
	if m == nil {
		return
	}
	m.BatchJobChanged.WithLabelValues(job).Add(float64(changed))
	m.BatchJobFailures.WithLabelValues(job).Add(float64(failed))
	m.BatchJobDuration.WithLabelValues(job).Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveHTTP(method, route string, status int, start time.Time) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
}
