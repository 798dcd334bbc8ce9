package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molgraph/internal/application/conversion"
	"github.com/turtacn/molgraph/internal/application/registers"
	"github.com/turtacn/molgraph/internal/domain/vocabulary"
	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/molgraph/internal/infrastructure/storage"
	"github.com/turtacn/molgraph/internal/interfaces/http/handlers"
	"github.com/turtacn/molgraph/internal/interfaces/http/middleware"
	"github.com/turtacn/molgraph/pkg/types/common"
	mtypes "github.com/turtacn/molgraph/pkg/types/molecule"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success   bool                `json:"success"`
	Data      json.RawMessage     `json:"data"`
	Error     *common.ErrorDetail `json:"error"`
	RequestID string              `json:"request_id"`
}

type staticChecker common.ComponentHealth

func (s staticChecker) HealthCheck(context.Context) common.ComponentHealth {
	return common.ComponentHealth(s)
}

func testRouterConfig(t *testing.T) RouterConfig {
	t.Helper()
	logger := logging.NewNopLogger()
	return RouterConfig{
		Conversion:     conversion.NewService(vocabulary.DefaultRegistry(), logger, nil),
		Registers:      registers.NewService(logger, nil),
		DefaultDataset: vocabulary.PTCFM,
		Version:        "test",
		Logger:         logger,
		MaxBodySize:    1 << 20,
	}
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func oneHot(idx, width int) mtypes.FeatureDTO {
	v := make([]float64, width)
	v[idx] = 1
	return mtypes.FeatureDTO{Values: v}
}

// carbonMonoxideLike is C=O in PTC_FM one-hot encoding.
func carbonMonoxideLike() mtypes.GraphDTO {
	return mtypes.GraphDTO{
		Nodes: []mtypes.NodeDTO{
			{Key: "c", X: oneHot(2, 18)},
			{Key: "o", X: oneHot(3, 18)},
		},
		Edges: []mtypes.EdgeDTO{
			{Source: "c", Target: "o", EdgeAttr: oneHot(2, 4)},
		},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Molecules
// ─────────────────────────────────────────────────────────────────────────────

func TestReconstruct_Success(t *testing.T) {
	r := NewRouter(testRouterConfig(t))

	w, env := do(t, r, http.MethodPost, "/api/v1/molecules/reconstruct",
		handlers.ReconstructRequest{Graph: carbonMonoxideLike()})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.True(t, env.Success)
	assert.NotEmpty(t, env.RequestID)
	assert.Equal(t, env.RequestID, w.Header().Get(middleware.HeaderRequestID))

	var mol mtypes.MoleculeDTO
	require.NoError(t, json.Unmarshal(env.Data, &mol))
	assert.Equal(t, "CO", mol.Formula)
	assert.Equal(t, []mtypes.AtomDTO{{Index: 0, Symbol: "C"}, {Index: 1, Symbol: "O"}}, mol.Atoms)
	assert.Equal(t, []mtypes.BondDTO{{Begin: 0, End: 1, Type: mtypes.BondDouble}}, mol.Bonds)
}

func TestReconstruct_Errors(t *testing.T) {
	r := NewRouter(testRouterConfig(t))

	unknownBond := carbonMonoxideLike()
	unknownBond.Edges[0].EdgeAttr = mtypes.FeatureDTO{Values: []float64{0, 0, 0, 0}}

	emptyKey := carbonMonoxideLike()
	emptyKey.Nodes[0].Key = ""

	tests := []struct {
		name   string
		body   interface{}
		status int
		code   string
	}{
		{"malformed json", `{"graph":`, http.StatusBadRequest, "COMMON_002"},
		{"unknown dataset", handlers.ReconstructRequest{Dataset: "PTC_MR", Graph: carbonMonoxideLike()}, http.StatusNotFound, "VOC_001"},
		{"undecodable edge feature", handlers.ReconstructRequest{Graph: unknownBond}, http.StatusUnprocessableEntity, "GRP_001"},
		{"empty node key", handlers.ReconstructRequest{Graph: emptyKey}, http.StatusBadRequest, "GRP_003"},
		{"null node feature", `{"graph":{"nodes":[{"key":"a","x":null},{"key":"b","x":[0,0,1]}],"edges":[]}}`, http.StatusBadRequest, "GRP_003"},
		{"null edge feature", `{"graph":{"nodes":[{"key":"a","x":2},{"key":"b","x":3}],"edges":[{"source":"a","target":"b","edge_attr":null}]}}`, http.StatusBadRequest, "GRP_003"},
		{"null feature component", `{"graph":{"nodes":[{"key":"a","x":[0,null,1]}],"edges":[]}}`, http.StatusBadRequest, "COMMON_002"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, env := do(t, r, http.MethodPost, "/api/v1/molecules/reconstruct", tc.body)
			assert.Equal(t, tc.status, w.Code)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.code, env.Error.Code)
		})
	}
}

func TestReconstruct_BodyTooLarge(t *testing.T) {
	cfg := testRouterConfig(t)
	cfg.MaxBodySize = 16
	r := NewRouter(cfg)

	w, env := do(t, r, http.MethodPost, "/api/v1/molecules/reconstruct",
		handlers.ReconstructRequest{Graph: carbonMonoxideLike()})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "request body too large", env.Error.Message)
	assert.Equal(t, "limit=16", env.Error.Detail)
}

func TestEncode_RoundTrip(t *testing.T) {
	r := NewRouter(testRouterConfig(t))

	body := `{"molecule":{"atoms":[{"index":0,"symbol":"C"},{"index":1,"symbol":"O"}],
		"bonds":[{"begin":0,"end":1,"type":"double"}]}}`
	w, env := do(t, r, http.MethodPost, "/api/v1/molecules/encode", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var enc handlers.EncodeResponse
	require.NoError(t, json.Unmarshal(env.Data, &enc))
	assert.Equal(t, vocabulary.PTCFM, enc.Dataset)
	require.Len(t, enc.Graph.Nodes, 2)
	assert.Equal(t, oneHot(2, 18).Values, enc.Graph.Nodes[0].X.Values)
	require.Len(t, enc.Graph.Edges, 1)
	assert.Equal(t, oneHot(2, 4).Values, enc.Graph.Edges[0].EdgeAttr.Values)

	w, env = do(t, r, http.MethodPost, "/api/v1/molecules/reconstruct", handlers.ReconstructRequest{Graph: enc.Graph})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var mol mtypes.MoleculeDTO
	require.NoError(t, json.Unmarshal(env.Data, &mol))
	assert.Equal(t, "CO", mol.Formula)
}

func TestEncode_Errors(t *testing.T) {
	r := NewRouter(testRouterConfig(t))

	w, env := do(t, r, http.MethodPost, "/api/v1/molecules/encode",
		`{"molecule":{"atoms":[{"index":0,"symbol":"Xx"}]}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "MOL_003", env.Error.Code)

	w, env = do(t, r, http.MethodPost, "/api/v1/molecules/encode",
		`{"molecule":{"atoms":[{"index":0,"symbol":"H"}]}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "MOL_001", env.Error.Code)

	w, env = do(t, r, http.MethodPost, "/api/v1/molecules/encode",
		`{"molecule":{"atoms":[{"index":0,"symbol":"C"}],"bonds":[{"begin":0,"end":0,"type":"single"}]}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "MOL_004", env.Error.Code)
}

func TestMolecules_MethodNotAllowed(t *testing.T) {
	r := NewRouter(testRouterConfig(t))
	w, _ := do(t, r, http.MethodGet, "/api/v1/molecules/reconstruct", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

// ─────────────────────────────────────────────────────────────────────────────
// Vocabularies
// ─────────────────────────────────────────────────────────────────────────────

func TestVocabularies(t *testing.T) {
	r := NewRouter(testRouterConfig(t))

	w, env := do(t, r, http.MethodGet, "/api/v1/vocabularies", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []mtypes.VocabularyDTO
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, vocabulary.PTCFM, list[0].Name)
	assert.True(t, list[0].OneHot)

	w, env = do(t, r, http.MethodGet, "/api/v1/vocabularies/PTC_FM", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var one mtypes.VocabularyDTO
	require.NoError(t, json.Unmarshal(env.Data, &one))
	assert.Equal(t, "Cl", one.Nodes[5])
	assert.Equal(t, mtypes.BondAromatic, one.Edges[3])

	w, env = do(t, r, http.MethodGet, "/api/v1/vocabularies/PTC_MR", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "VOC_001", env.Error.Code)
}

// ─────────────────────────────────────────────────────────────────────────────
// Registers
// ─────────────────────────────────────────────────────────────────────────────

func TestRegistersMatch(t *testing.T) {
	r := NewRouter(testRouterConfig(t))

	req := handlers.MatchRequest{
		Processed: []mtypes.RegisterEntryDTO{
			{Coords: [][]float64{{0, 0}, {1, 0}}},
			{Coords: [][]float64{{0, 0}, {3, 0}}},
		},
		Compiled: []mtypes.RegisterEntryDTO{
			{ID: "shifted", Coords: [][]float64{{5, 5}, {6, 5}}},
			{ID: "stretched", Coords: [][]float64{{0, 0}, {2, 0}}},
		},
	}
	w, env := do(t, r, http.MethodPost, "/api/v1/registers/match", req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp handlers.MatchResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, 1, resp.Matched)
	assert.Equal(t, []string{"shifted"}, resp.Correspondence[0])
	assert.Empty(t, resp.Correspondence[1])
	assert.Len(t, resp.Correspondence, 2)
}

func TestRegistersMatch_Invalid(t *testing.T) {
	r := NewRouter(testRouterConfig(t))

	req := handlers.MatchRequest{
		Processed: []mtypes.RegisterEntryDTO{{Coords: [][]float64{{0, 0}, {1}}}},
	}
	w, env := do(t, r, http.MethodPost, "/api/v1/registers/match", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "REG_001", env.Error.Code)

	req = handlers.MatchRequest{
		Compiled: []mtypes.RegisterEntryDTO{{Coords: [][]float64{{0, 0}}}},
	}
	w, env = do(t, r, http.MethodPost, "/api/v1/registers/match", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "REG_001", env.Error.Code)
}

// ─────────────────────────────────────────────────────────────────────────────
// Probes and metrics
// ─────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	cfg := testRouterConfig(t)
	cfg.HealthCheckers = []storage.HealthChecker{
		staticChecker{Name: "storage.local", Status: common.HealthUp},
	}
	r := NewRouter(cfg)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var resp handlers.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, common.HealthUp, resp.Status)
	assert.Equal(t, "test", resp.Version)
	require.Len(t, resp.Components, 1)
	assert.Equal(t, "storage.local", resp.Components[0].Name)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/livez", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"alive"`)
}

func TestHealth_Statuses(t *testing.T) {
	tests := []struct {
		name     string
		statuses []common.HealthStatus
		code     int
		overall  common.HealthStatus
	}{
		{"no components", nil, http.StatusOK, common.HealthUp},
		{"degraded", []common.HealthStatus{common.HealthUp, common.HealthDegraded}, http.StatusOK, common.HealthDegraded},
		{"down wins", []common.HealthStatus{common.HealthDown, common.HealthDegraded}, http.StatusServiceUnavailable, common.HealthDown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testRouterConfig(t)
			for _, s := range tc.statuses {
				cfg.HealthCheckers = append(cfg.HealthCheckers, staticChecker{Name: "c", Status: s})
			}
			w := httptest.NewRecorder()
			NewRouter(cfg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tc.code, w.Code)
			var resp handlers.HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.overall, resp.Status)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{Namespace: "molgraph"}, nil)
	require.NoError(t, err)

	cfg := testRouterConfig(t)
	cfg.Metrics = prometheus.NewGraphMetrics(collector)
	cfg.MetricsHandler = collector.Handler()
	cfg.MetricsPath = "/metrics"
	r := NewRouter(cfg)

	do(t, r, http.MethodGet, "/api/v1/vocabularies", nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `molgraph_http_requests_total{method="GET",path="/api/v1/vocabularies",status_code="200"} 1`)
}

func TestCORSMounted(t *testing.T) {
	cfg := testRouterConfig(t)
	cfg.CORSOrigins = []string{"https://ui.example.com"}
	r := NewRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vocabularies", nil)
	req.Header.Set("Origin", "https://ui.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://ui.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

//Personal.AI order the ending
