package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/lecture-eval/pkg/server/store"
)

const dataDir = "/data"

func newTestStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	s := New(fs, dataDir)
	require.NoError(t, s.EnsureFiles())
	return s, fs
}

func readFile(t *testing.T, fs afero.Fs, name string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, filepath.Join(dataDir, name))
	require.NoError(t, err)
	return string(data)
}

func TestEnsureFiles(t *testing.T) {
	s, fs := newTestStore(t)

	for _, name := range []string{UsersFile, LecturersFile, EvaluationsFile} {
		assert.JSONEq(t, "[]", readFile(t, fs, name), name)
	}

	// Existing content is preserved.
	require.NoError(t, afero.WriteFile(fs, filepath.Join(dataDir, UsersFile),
		[]byte(`[{"index":"0001","name":"Ada","email":"ada@example.edu"}]`), 0o644))
	require.NoError(t, s.EnsureFiles())
	assert.Contains(t, readFile(t, fs, UsersFile), "ada@example.edu")
}

func TestRegisterUser(t *testing.T) {
	s, fs := newTestStore(t)
	ctx := context.Background()

	ada, err := s.RegisterUser(ctx, "Ada", "ada@example.edu")
	require.NoError(t, err)
	assert.Equal(t, "0001", ada.Index)

	grace, err := s.RegisterUser(ctx, "Grace", "grace@example.edu")
	require.NoError(t, err)
	assert.Equal(t, "0002", grace.Index)

	_, err = s.RegisterUser(ctx, "Ada Again", "ada@example.edu")
	assert.ErrorIs(t, err, store.ErrUserExists)

	exists, err := s.UserExists(ctx, "0002")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.UserExists(ctx, "0003")
	require.NoError(t, err)
	assert.False(t, exists)

	var onDisk []map[string]string
	require.NoError(t, json.Unmarshal([]byte(readFile(t, fs, UsersFile)), &onDisk))
	assert.Equal(t, []map[string]string{
		{"index": "0001", "name": "Ada", "email": "ada@example.edu"},
		{"index": "0002", "name": "Grace", "email": "grace@example.edu"},
	}, onDisk)
	assert.Contains(t, readFile(t, fs, UsersFile), "    \"index\"", "files are written with 4-space indentation")

	users, err := s.ListUsers(ctx, store.Page{Offset: 1})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Grace", users[0].Name)
}

func TestFileBytesMatchPythonJSONDump(t *testing.T) {
	s, fs := newTestStore(t)
	ctx := context.Background()

	_, err := s.RegisterUser(ctx, "Zoë <Ω> 😀", "zoe@example.edu")
	require.NoError(t, err)

	assert.Equal(t, "[\n"+
		"    {\n"+
		"        \"index\": \"0001\",\n"+
		"        \"name\": \"Zo\\u00eb <\\u03a9> \\ud83d\\ude00\",\n"+
		"        \"email\": \"zoe@example.edu\"\n"+
		"    }\n"+
		"]", readFile(t, fs, UsersFile))

	users, err := s.ListUsers(ctx, store.Page{})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Zoë <Ω> 😀", users[0].Name)
}

func TestRegisterUserConcurrentIndexesAreUnique(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	const n = 20
	indexes := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u, err := s.RegisterUser(ctx, fmt.Sprintf("user-%d", i), fmt.Sprintf("user%d@example.edu", i))
			if assert.NoError(t, err) {
				indexes <- u.Index
			}
		}(i)
	}
	wg.Wait()
	close(indexes)

	seen := map[string]bool{}
	for idx := range indexes {
		assert.False(t, seen[idx], "duplicate index %s", idx)
		seen[idx] = true
	}
	assert.Len(t, seen, n)
}

func TestLecturers(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first, err := s.AddLecturer(ctx, "Dr. Turing", "Computer Science")
	require.NoError(t, err)
	assert.Equal(t, "L0001", first.ID)

	second, err := s.AddLecturer(ctx, "Dr. Noether", "Mathematics")
	require.NoError(t, err)
	assert.Equal(t, "L0002", second.ID)

	got, err := s.GetLecturer(ctx, "L0002")
	require.NoError(t, err)
	assert.Equal(t, "Mathematics", got.Department)

	_, err = s.GetLecturer(ctx, "L0009")
	assert.ErrorIs(t, err, store.ErrLecturerNotFound)

	all, err := s.ListLecturers(ctx, store.Page{})
	require.NoError(t, err)
	assert.Equal(t, []store.Lecturer{*first, *second}, all)

	limited, err := s.ListLecturers(ctx, store.Page{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []store.Lecturer{*first}, limited)
}

func TestEvaluations(t *testing.T) {
	s, fs := newTestStore(t)
	ctx := context.Background()
	comment := "clear explanations"

	require.NoError(t, s.SubmitEvaluation(ctx, store.Evaluation{UserIndex: "0001", LecturerID: "L0001", Rating: 5, Comments: &comment}))
	require.NoError(t, s.SubmitEvaluation(ctx, store.Evaluation{UserIndex: "0002", LecturerID: "L0001", Rating: 2}))
	require.NoError(t, s.SubmitEvaluation(ctx, store.Evaluation{UserIndex: "0001", LecturerID: "L0002", Rating: 4}))

	all, err := s.ListEvaluations(ctx, store.EvaluationFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, &comment, all[0].Comments)
	assert.Nil(t, all[1].Comments)
	assert.Contains(t, readFile(t, fs, EvaluationsFile), `"comments": null`)

	byLecturer, err := s.ListEvaluations(ctx, store.EvaluationFilter{LecturerID: "L0001"})
	require.NoError(t, err)
	assert.Len(t, byLecturer, 2)

	byUser, err := s.ListEvaluations(ctx, store.EvaluationFilter{UserIndex: "0001", Page: store.Page{Limit: 1, Offset: 1}})
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, "L0002", byUser[0].LecturerID)

	summary, err := s.SummarizeLecturer(ctx, "L0001")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.InDelta(t, 3.5, summary.Average, 1e-9)
}

func TestReadsMissingAndEmptyFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, dataDir)
	ctx := context.Background()

	lecturers, err := s.ListLecturers(ctx, store.Page{})
	require.NoError(t, err)
	assert.Empty(t, lecturers)

	require.NoError(t, fs.MkdirAll(dataDir, 0o755))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(dataDir, LecturersFile), []byte("  \n"), 0o644))
	lecturers, err = s.ListLecturers(ctx, store.Page{})
	require.NoError(t, err)
	assert.Empty(t, lecturers)
}

func TestCorruptFile(t *testing.T) {
	s, fs := newTestStore(t)
	require.NoError(t, afero.WriteFile(fs, filepath.Join(dataDir, UsersFile), []byte("{not json"), 0o644))

	_, err := s.RegisterUser(context.Background(), "Ada", "ada@example.edu")
	assert.ErrorContains(t, err, "failed to parse users.json")
}

func TestCheckConnectivity(t *testing.T) {
	s, _ := newTestStore(t)
	assert.NoError(t, s.CheckConnectivity(context.Background()))

	missing := New(afero.NewMemMapFs(), "/nowhere")
	assert.Error(t, missing.CheckConnectivity(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.CheckConnectivity(ctx), context.Canceled)
}
