package benchmark

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/doodlesbykumbi/lecture-eval/pkg/config"
	"github.com/doodlesbykumbi/lecture-eval/pkg/logging"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server/endpoints"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server/store"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server/store/jsonfile"
)

func newBenchServer(b *testing.B, evaluations int) *httptest.Server {
	b.Helper()
	js := jsonfile.New(afero.NewMemMapFs(), "/data")
	if err := js.EnsureFiles(); err != nil {
		b.Fatal(err)
	}

	ctx := context.Background()
	if _, err := js.RegisterUser(ctx, "Ada", "ada@example.edu"); err != nil {
		b.Fatal(err)
	}
	if _, err := js.AddLecturer(ctx, "Dr. Turing", "Computer Science"); err != nil {
		b.Fatal(err)
	}
	for i := 0; i < evaluations; i++ {
		e := store.Evaluation{UserIndex: "0001", LecturerID: "L0001", Rating: i%5 + 1}
		if err := js.SubmitEvaluation(ctx, e); err != nil {
			b.Fatal(err)
		}
	}

	stores := server.Stores{Users: js, Lecturers: js, Evaluations: js, Health: js}
	s := server.NewServer(stores, config.Default(), logging.MustGetLogger(logging.LevelNone), "127.0.0.1", "0")
	if err := endpoints.RegisterAll(s); err != nil {
		b.Fatal(err)
	}

	ts := httptest.NewServer(s.Handler())
	b.Cleanup(ts.Close)
	return ts
}

func BenchmarkEvaluationsHandler(b *testing.B) {
	b.Run("POST /evaluate", func(b *testing.B) {
		ts := newBenchServer(b, 0)
		body := `{"user_index": "0001", "lecturer_id": "L0001", "rating": 4}`

		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			resp, err := http.Post(ts.URL+"/evaluate", "application/json", strings.NewReader(body))
			if err != nil {
				b.Fatal(err)
			}
			_ = resp.Body.Close()
		}
	})

	for _, n := range []int{100, 1000} {
		b.Run(fmt.Sprintf("GET /evaluations with %d stored", n), func(b *testing.B) {
			ts := newBenchServer(b, n)

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				resp, err := http.Get(ts.URL + "/evaluations?lecturer_id=L0001&limit=50")
				if err != nil {
					b.Fatal(err)
				}
				_ = resp.Body.Close()
			}
		})

		b.Run(fmt.Sprintf("GET /lecturers/L0001/summary with %d stored", n), func(b *testing.B) {
			ts := newBenchServer(b, n)

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				resp, err := http.Get(ts.URL + "/lecturers/L0001/summary")
				if err != nil {
					b.Fatal(err)
				}
				_ = resp.Body.Close()
			}
		})
	}
}
