package prometheus

import (
	"strconv"
	"time"
)

// Status label values.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// GraphMetrics holds the molgraph metric vectors.
type GraphMetrics struct {
	// Reconstruction
	ReconstructionsTotal   CounterVec
	ReconstructionDuration HistogramVec
	MoleculeAtoms          HistogramVec
	EncodingsTotal         CounterVec

	// Register matching
	RegisterMatchRunsTotal CounterVec
	RegisterMatchesTotal   CounterVec
	RegisterMatchDuration  HistogramVec

	// Dataset loading
	DatasetLoadsTotal CounterVec

	// HTTP
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec
}

// Default buckets.
var (
	DefaultHTTPDurationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
	DefaultConvertBuckets      = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1}
	DefaultAtomCountBuckets    = []float64{1, 5, 10, 20, 50, 100, 200, 500}
)

// NewGraphMetrics registers every molgraph metric on collector.
func NewGraphMetrics(collector MetricsCollector) *GraphMetrics {
	m := &GraphMetrics{}

	m.ReconstructionsTotal = collector.RegisterCounter("reconstructions_total", "Graph to molecule reconstructions", "dataset", "status")
	m.ReconstructionDuration = collector.RegisterHistogram("reconstruction_duration_seconds", "Graph to molecule reconstruction duration", DefaultConvertBuckets, "dataset")
	m.MoleculeAtoms = collector.RegisterHistogram("molecule_atoms", "Atoms per reconstructed molecule", DefaultAtomCountBuckets, "dataset")
	m.EncodingsTotal = collector.RegisterCounter("encodings_total", "Molecule to graph encodings", "dataset", "status")

	m.RegisterMatchRunsTotal = collector.RegisterCounter("register_match_runs_total", "Register matching runs", "status")
	m.RegisterMatchesTotal = collector.RegisterCounter("register_matches_total", "Processed entries with at least one compiled match")
	m.RegisterMatchDuration = collector.RegisterHistogram("register_match_duration_seconds", "Register matching duration", nil)

	m.DatasetLoadsTotal = collector.RegisterCounter("dataset_loads_total", "Graph directories loaded from storage", "source", "status")

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "In-flight HTTP requests")

	return m
}

// NewNoopGraphMetrics returns GraphMetrics that discard every observation.
func NewNoopGraphMetrics() *GraphMetrics {
	return NewGraphMetrics(NewNoopCollector())
}

func status(err error) string {
	if err != nil {
		return StatusFailure
	}
	return StatusSuccess
}

// RecordReconstruction records one reconstruction.  atoms is ignored on failure.
func (m *GraphMetrics) RecordReconstruction(dataset string, atoms int, duration time.Duration, err error) {
	m.ReconstructionsTotal.WithLabelValues(dataset, status(err)).Inc()
	m.ReconstructionDuration.WithLabelValues(dataset).Observe(duration.Seconds())
	if err == nil {
		m.MoleculeAtoms.WithLabelValues(dataset).Observe(float64(atoms))
	}
}

// RecordEncoding records one molecule to graph encoding.
func (m *GraphMetrics) RecordEncoding(dataset string, err error) {
	m.EncodingsTotal.WithLabelValues(dataset, status(err)).Inc()
}

// RecordRegisterMatch records one matching run and how many processed entries
// found at least one compiled counterpart.
func (m *GraphMetrics) RecordRegisterMatch(matched int, duration time.Duration, err error) {
	m.RegisterMatchRunsTotal.WithLabelValues(status(err)).Inc()
	m.RegisterMatchDuration.WithLabelValues().Observe(duration.Seconds())
	if err == nil {
		m.RegisterMatchesTotal.WithLabelValues().Add(float64(matched))
	}
}

// RecordDatasetLoad records one graph directory load.
func (m *GraphMetrics) RecordDatasetLoad(source string, err error) {
	m.DatasetLoadsTotal.WithLabelValues(source, status(err)).Inc()
}

// RecordHTTPRequest records one served HTTP request.
func (m *GraphMetrics) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// HTTPRequestStarted marks one request as in flight.
func (m *GraphMetrics) HTTPRequestStarted() {
	m.HTTPActiveRequests.WithLabelValues().Inc()
}

// HTTPRequestFinished clears one in-flight request.
func (m *GraphMetrics) HTTPRequestFinished() {
	m.HTTPActiveRequests.WithLabelValues().Dec()
}

//Personal.AI order the ending
