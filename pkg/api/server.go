package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/floorkit/hbstar/pkg/config"
	"github.com/floorkit/hbstar/pkg/hberrors"
	"github.com/floorkit/hbstar/pkg/observability"
	"github.com/floorkit/hbstar/pkg/store"
)

// Server wraps a Manager behind a chi router: POST /jobs submits a
// manifest, GET /jobs/{id} polls its status and result.
type Server struct {
	manager *Manager
	router  chi.Router
}

// NewServer builds a Server whose jobs are bounded to budget and persisted
// via runStore (nil disables persistence).
func NewServer(budget time.Duration, runStore store.Store) *Server {
	s := &Server{manager: NewManager(budget, runStore)}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(observeRequests)
	r.Post("/jobs", s.handleSubmit)
	r.Get("/jobs/{id}", s.handleGet)
	s.router = r

	return s
}

// Router returns the http.Handler to mount or pass to http.ListenAndServe.
func (s *Server) Router() http.Handler {
	return s.router
}

// submitRequest is the POST /jobs body: a parser manifest plus optional
// config overrides layered on top of config.Default().
type submitRequest struct {
	Input  string        `json:"input"`
	Config config.Config `json:"config,omitempty"`
}

type submitResponse struct {
	ID string `json:"id"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	req := submitRequest{Config: config.Default()}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, hberrors.New(hberrors.ErrCodeInvalidInput, "malformed JSON body: %v", err))
		return
	}

	cfg := req.Config

	id, err := s.manager.Submit(req.Input, cfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusAccepted, submitResponse{ID: id})
}

type jobResponse struct {
	ID       string     `json:"id"`
	Status   Status     `json:"status"`
	Error    string     `json:"error,omitempty"`
	BestCost float64    `json:"best_cost,omitempty"`
	BestArea int        `json:"best_area,omitempty"`
	TimedOut bool       `json:"timed_out,omitempty"`
	Run      *store.Run `json:"run,omitempty"`
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, ok := s.manager.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, hberrors.New(hberrors.ErrCodeUnknownModule, "no job %q", id))
		return
	}

	resp := jobResponse{ID: job.ID, Status: job.Status, Error: job.Error}
	if job.Result != nil {
		resp.BestCost = job.Result.BestCost
		resp.BestArea = job.Result.BestArea
		resp.TimedOut = job.Result.TimedOut
		resp.Run = job.Run
	}
	writeJSON(w, http.StatusOK, resp)
}

func observeRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.Host, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.Host, r.URL.Path, ww.Status(), time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
