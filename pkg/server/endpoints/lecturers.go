package endpoints

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/lecture-eval/pkg/audit"
	"github.com/doodlesbykumbi/lecture-eval/pkg/config"
	"github.com/doodlesbykumbi/lecture-eval/pkg/metrics"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server/middleware"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server/store"
)

// AddLecturerResponse is returned after a lecturer is added
type AddLecturerResponse struct {
	LecturerID string `json:"lecturer_id"`
	Message    string `json:"message"`
}

// RegisterLecturersEndpoints registers the lecturer endpoints.
// Adding a lecturer goes through the admin token guard.
func RegisterLecturersEndpoints(s *server.Server) {
	s.Router.Handle("/lecturers",
		s.AdminToken.Middleware(handleAddLecturer(s.LecturersStore, s.Auditor, s.Metrics, s.Logger)),
	).Methods("POST")
	s.Router.HandleFunc("/lecturers", handleListLecturers(s.LecturersStore, s.Config, s.Logger)).Methods("GET")
	s.Router.HandleFunc("/lecturers/{id}", handleGetLecturer(s.LecturersStore, s.Logger)).Methods("GET")
	s.Router.HandleFunc("/lecturers/{id}/summary", handleLecturerSummary(s.LecturersStore, s.EvaluationsStore, s.Logger)).Methods("GET")
}

func handleAddLecturer(lecturersStore store.LecturersStore, auditor *audit.Auditor, m *metrics.Metrics, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := readBody(r)
		var name, department string
		if body.ok() {
			name = body.String("name")
			department = body.String("department")
		}
		if errs := body.Errors(); len(errs) > 0 {
			respondWithValidation(w, errs)
			return
		}

		lecturer, err := lecturersStore.AddLecturer(r.Context(), name, department)
		if err != nil {
			respondWithInternalError(w, r, log, err)
			return
		}

		m.LecturerAdded()
		auditor.Record(r.Context(), audit.LecturerEvent{
			LecturerID: lecturer.ID,
			Name:       lecturer.Name,
			Department: lecturer.Department,
			Subject:    middleware.AdminSubject(r.Context()),
			ClientIP:   clientIP(r),
		})
		respondWithJSON(w, http.StatusOK, AddLecturerResponse{
			LecturerID: lecturer.ID,
			Message:    "Lecturer added successfully",
		})
	}
}

func handleListLecturers(lecturersStore store.LecturersStore, cfg func() *config.EvalConfig, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, errs := pageFromQuery(r, cfg())
		if len(errs) > 0 {
			respondWithValidation(w, errs)
			return
		}

		lecturers, err := lecturersStore.ListLecturers(r.Context(), page)
		if err != nil {
			respondWithInternalError(w, r, log, err)
			return
		}
		respondWithJSON(w, http.StatusOK, lecturers)
	}
}

func handleGetLecturer(lecturersStore store.LecturersStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lecturer, err := lecturersStore.GetLecturer(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			if errors.Is(err, store.ErrLecturerNotFound) {
				respondWithDetail(w, http.StatusNotFound, "Lecturer not found")
				return
			}
			respondWithInternalError(w, r, log, err)
			return
		}
		respondWithJSON(w, http.StatusOK, lecturer)
	}
}

func handleLecturerSummary(lecturersStore store.LecturersStore, evaluationsStore store.EvaluationsStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		if _, err := lecturersStore.GetLecturer(r.Context(), id); err != nil {
			if errors.Is(err, store.ErrLecturerNotFound) {
				respondWithDetail(w, http.StatusNotFound, "Lecturer not found")
				return
			}
			respondWithInternalError(w, r, log, err)
			return
		}

		summary, err := evaluationsStore.SummarizeLecturer(r.Context(), id)
		if err != nil {
			respondWithInternalError(w, r, log, err)
			return
		}
		respondWithJSON(w, http.StatusOK, summary)
	}
}

// pageFromQuery reads limit and offset, clamping limit to list_limit_max
func pageFromQuery(r *http.Request, cfg *config.EvalConfig) (store.Page, []ValidationError) {
	var errs []ValidationError
	q := r.URL.Query()
	limit := queryInt(q, "limit", &errs)
	offset := queryInt(q, "offset", &errs)
	return store.Page{Limit: cfg.ClampLimit(limit), Offset: offset}, errs
}
