package endpoints

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/lecture-eval/pkg/audit"
	"github.com/doodlesbykumbi/lecture-eval/pkg/config"
	"github.com/doodlesbykumbi/lecture-eval/pkg/metrics"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server/store"
)

// RegisterEvaluationsEndpoints registers evaluation submission and listing
func RegisterEvaluationsEndpoints(s *server.Server) {
	s.Router.HandleFunc("/evaluate", handleEvaluate(s.UsersStore, s.LecturersStore, s.EvaluationsStore, s.Config, s.Auditor, s.Metrics, s.Logger)).Methods("POST")
	s.Router.HandleFunc("/evaluations", handleListEvaluations(s.EvaluationsStore, s.Config, s.Logger)).Methods("GET")
}

func handleEvaluate(
	usersStore store.UsersStore,
	lecturersStore store.LecturersStore,
	evaluationsStore store.EvaluationsStore,
	cfg func() *config.EvalConfig,
	auditor *audit.Auditor,
	m *metrics.Metrics,
	log *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := readBody(r)
		var evaluation store.Evaluation
		if body.ok() {
			evaluation = store.Evaluation{
				UserIndex:  body.String("user_index"),
				LecturerID: body.String("lecturer_id"),
				Rating:     body.Int("rating"),
				Comments:   body.OptionalString("comments"),
			}
		}
		if errs := body.Errors(); len(errs) > 0 {
			respondWithValidation(w, errs)
			return
		}

		reject := func(code int, detail string) {
			auditor.Record(r.Context(), audit.EvaluationEvent{
				UserIndex:    evaluation.UserIndex,
				LecturerID:   evaluation.LecturerID,
				Rating:       evaluation.Rating,
				ClientIP:     clientIP(r),
				ErrorMessage: detail,
			})
			respondWithDetail(w, code, detail)
		}

		exists, err := usersStore.UserExists(r.Context(), evaluation.UserIndex)
		if err != nil {
			respondWithInternalError(w, r, log, err)
			return
		}
		if !exists {
			reject(http.StatusNotFound, "User not found")
			return
		}

		if _, err := lecturersStore.GetLecturer(r.Context(), evaluation.LecturerID); err != nil {
			if errors.Is(err, store.ErrLecturerNotFound) {
				reject(http.StatusNotFound, "Lecturer not found")
				return
			}
			respondWithInternalError(w, r, log, err)
			return
		}

		c := cfg()
		if !c.RatingInRange(evaluation.Rating) {
			reject(http.StatusBadRequest, fmt.Sprintf("Rating must be between %d and %d", c.RatingMin, c.RatingMax))
			return
		}

		if err := evaluationsStore.SubmitEvaluation(r.Context(), evaluation); err != nil {
			respondWithInternalError(w, r, log, err)
			return
		}

		m.EvaluationSubmitted(evaluation.Rating)
		auditor.Record(r.Context(), audit.EvaluationEvent{
			UserIndex:  evaluation.UserIndex,
			LecturerID: evaluation.LecturerID,
			Rating:     evaluation.Rating,
			ClientIP:   clientIP(r),
			Success:    true,
		})
		respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Evaluation submitted successfully"})
	}
}

func handleListEvaluations(evaluationsStore store.EvaluationsStore, cfg func() *config.EvalConfig, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, errs := pageFromQuery(r, cfg())
		if len(errs) > 0 {
			respondWithValidation(w, errs)
			return
		}

		q := r.URL.Query()
		evaluations, err := evaluationsStore.ListEvaluations(r.Context(), store.EvaluationFilter{
			UserIndex:  q.Get("user_index"),
			LecturerID: q.Get("lecturer_id"),
			Page:       page,
		})
		if err != nil {
			respondWithInternalError(w, r, log, err)
			return
		}
		respondWithJSON(w, http.StatusOK, evaluations)
	}
}
