package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go-mindfit/handlers"
	"go-mindfit/nlp"
	"go-mindfit/processor"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const surveyCSV = "Timestamp,Name,Gender,Role,How is work?,Worry,Sleep\n" +
	"1,a,Female,Officer,I feel happy,5,5\n" +
	"2,b,Male,Officer,I feel happy,5,5\n" +
	"3,c,Female,Soldier,I feel happy,5,5\n" +
	"4,d,Male,Soldier,Nothing to add,3,3\n" +
	"5,e,Female,Soldier,Nothing to add,3,3\n" +
	"6,f,Male,Soldier,Nothing to add,3,3\n" +
	"7,g,Female,Soldier,I am stressed,1,1\n" +
	"8,h,Male,Officer,I am stressed,1,1\n" +
	"9,i,Female,Officer,I am stressed,1,1\n"

func init() {
	gin.SetMode(gin.TestMode)
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestSetupRouter(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "survey.csv")
	require.NoError(t, os.WriteFile(dataPath, []byte(surveyCSV), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "elbow_method.png"), []byte("png"), 0o600))

	registry := prometheus.NewRegistry()
	runner := processor.NewRunner(nlp.NewLexiconScorer(), processor.DefaultOptions(), dataPath, nil, registry)
	_, err := runner.Refresh(context.Background())
	require.NoError(t, err)

	r := SetupRouter(handlers.NewHandler(runner, nil, dir, registry), registry)

	w := get(r, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "MindFIT")

	w = get(r, "/api/mindfit/analysis")
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(r, "/assets/elbow_method.png")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png", w.Body.String())

	w = get(r, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mindfit_pipeline_runs_total")
	assert.Contains(t, w.Body.String(), "mindfit_respondents 9")
}

func TestSetupRouter_NoMetrics(t *testing.T) {
	runner := processor.NewRunner(nlp.NewLexiconScorer(), processor.DefaultOptions(), "missing.csv", nil, nil)
	r := SetupRouter(handlers.NewHandler(runner, nil, t.TempDir(), nil), nil)

	assert.Equal(t, http.StatusNotFound, get(r, "/metrics").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(r, "/api/mindfit/analysis").Code)
}
