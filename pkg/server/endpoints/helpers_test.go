package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/lecture-eval/pkg/config"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server/store"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server/store/jsonfile"
)

type testServer struct {
	*server.Server
	fs      afero.Fs
	handler http.Handler
}

func newTestServer(t *testing.T, mutate func(cfg *config.EvalConfig)) *testServer {
	t.Helper()
	return newTestServerWith(t, mutate, nil)
}

// newTestServerWith lets setup replace server collaborators before routes
// are registered
func newTestServerWith(t *testing.T, mutate func(cfg *config.EvalConfig), setup func(s *server.Server)) *testServer {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = "/data"
	if mutate != nil {
		mutate(cfg)
	}

	fs := afero.NewMemMapFs()
	js := jsonfile.New(fs, cfg.DataDir)
	require.NoError(t, js.EnsureFiles())

	s := server.NewServer(server.Stores{
		Users:       js,
		Lecturers:   js,
		Evaluations: js,
		Health:      js,
	}, cfg, nil, "127.0.0.1", "0")
	if setup != nil {
		setup(s)
	}
	require.NoError(t, RegisterAll(s))

	return &testServer{Server: s, fs: fs, handler: s.Handler()}
}

func (ts *testServer) do(t *testing.T, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

var errBroken = errors.New("disk on fire")

// brokenStore fails every operation
type brokenStore struct{}

func (brokenStore) RegisterUser(context.Context, string, string) (*store.User, error) {
	return nil, errBroken
}
func (brokenStore) UserExists(context.Context, string) (bool, error) { return false, errBroken }
func (brokenStore) ListUsers(context.Context, store.Page) ([]store.User, error) {
	return nil, errBroken
}
func (brokenStore) AddLecturer(context.Context, string, string) (*store.Lecturer, error) {
	return nil, errBroken
}
func (brokenStore) GetLecturer(context.Context, string) (*store.Lecturer, error) {
	return nil, errBroken
}
func (brokenStore) ListLecturers(context.Context, store.Page) ([]store.Lecturer, error) {
	return nil, errBroken
}
func (brokenStore) SubmitEvaluation(context.Context, store.Evaluation) error { return errBroken }
func (brokenStore) ListEvaluations(context.Context, store.EvaluationFilter) ([]store.Evaluation, error) {
	return nil, errBroken
}
func (brokenStore) SummarizeLecturer(context.Context, string) (*store.LecturerSummary, error) {
	return nil, errBroken
}
func (brokenStore) CheckConnectivity(context.Context) error { return errBroken }

func newBrokenServer(t *testing.T) *testServer {
	t.Helper()
	s := server.NewServer(server.Stores{
		Users:       brokenStore{},
		Lecturers:   brokenStore{},
		Evaluations: brokenStore{},
		Health:      brokenStore{},
	}, config.Default(), nil, "127.0.0.1", "0")
	require.NoError(t, RegisterAll(s))
	return &testServer{Server: s, handler: s.Handler()}
}
