package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3leaps/nimbusml/internal/config"
	"github.com/3leaps/nimbusml/pkg/execution"
	"github.com/3leaps/nimbusml/pkg/job"
	"github.com/3leaps/nimbusml/pkg/predictor"
)

type staticInfo struct {
	info predictor.Info
}

func (s *staticInfo) Info() predictor.Info { return s.info }

func testServer() *Server {
	src := &staticInfo{info: predictor.Info{
		Type:            "tabular",
		LocalOutputPath: "/tmp/out",
		CloudOutputPath: "s3://bucket/runs/test",
		FitJob: job.Snapshot{
			Name:       "fit-job",
			Status:     execution.StatusCompleted,
			OutputPath: "s3://bucket/output/model.tar.gz",
		},
		TransformJobs: []job.Snapshot{
			{Name: "batch-1", Status: execution.StatusCompleted},
			{Name: "batch-2", Status: execution.StatusInProgress},
		},
		EndpointName: "ep-1",
	}}
	return New(config.ServerConfig{Host: "localhost", Port: 8080}, src, nil)
}

func TestHealthz(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestInfo(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodGet, "/v1/info", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var info predictor.Info
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "tabular", info.Type)
	assert.Equal(t, "fit-job", info.FitJob.Name)
	assert.Equal(t, "ep-1", info.EndpointName)
	assert.Len(t, info.TransformJobs, 2)
}

func TestJobs(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodGet, "/v1/jobs", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		FitJob        job.Snapshot   `json:"fit_job"`
		TransformJobs []job.Snapshot `json:"transform_jobs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "fit-job", out.FitJob.Name)
	require.Len(t, out.TransformJobs, 2)
	assert.Equal(t, "batch-1", out.TransformJobs[0].Name)
}

func TestJobByName(t *testing.T) {
	srv := testServer()

	tests := []struct {
		name       string
		wantStatus int
		wantJob    string
	}{
		{"fit-job", http.StatusOK, "fit-job"},
		{"batch-2", http.StatusOK, "batch-2"},
		{"ghost", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/jobs/"+tt.name, nil)
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantJob != "" {
				var snap job.Snapshot
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
				assert.Equal(t, tt.wantJob, snap.Name)
			}
		})
	}
}

func TestPort(t *testing.T) {
	assert.Equal(t, 8080, testServer().Port())
}
