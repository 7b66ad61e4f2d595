package endpoints

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/lecture-eval/pkg/audit"
	"github.com/doodlesbykumbi/lecture-eval/pkg/metrics"
	"github.com/doodlesbykumbi/lecture-eval/pkg/model"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server/store"
)

// RegisterResponse is returned after a successful registration
type RegisterResponse struct {
	Index   string `json:"index"`
	Message string `json:"message"`
}

// RegisterUsersEndpoints registers the user registration endpoint
func RegisterUsersEndpoints(s *server.Server) {
	s.Router.HandleFunc("/register", handleRegister(s.UsersStore, s.Auditor, s.Metrics, s.Logger)).Methods("POST")
}

func handleRegister(usersStore store.UsersStore, auditor *audit.Auditor, m *metrics.Metrics, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := readBody(r)
		var name, email string
		if body.ok() {
			name = body.String("name")
			before := len(body.Errors())
			rawEmail := body.String("email")
			if len(body.Errors()) == before {
				normalized, err := model.NormalizeEmail(rawEmail)
				if err != nil {
					body.fail([]interface{}{"body", "email"}, err.Error(), "value_error")
				}
				email = normalized
			}
		}
		if errs := body.Errors(); len(errs) > 0 {
			respondWithValidation(w, errs)
			return
		}

		user, err := usersStore.RegisterUser(r.Context(), name, email)
		if err != nil {
			if errors.Is(err, store.ErrUserExists) {
				auditor.Record(r.Context(), audit.RegisterEvent{
					Email:        email,
					ClientIP:     clientIP(r),
					ErrorMessage: "User already exists",
				})
				respondWithDetail(w, http.StatusBadRequest, "User already exists")
				return
			}
			respondWithInternalError(w, r, log, err)
			return
		}

		m.UserRegistered()
		auditor.Record(r.Context(), audit.RegisterEvent{
			UserIndex: user.Index,
			Email:     user.Email,
			ClientIP:  clientIP(r),
			Success:   true,
		})
		respondWithJSON(w, http.StatusOK, RegisterResponse{
			Index:   user.Index,
			Message: "User registered successfully",
		})
	}
}
