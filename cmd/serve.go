package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/adaptune/constants"
	"github.com/jsphweid/adaptune/emit"
	"github.com/jsphweid/adaptune/engine"
	"github.com/jsphweid/adaptune/model"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the retuner over HTTP",
	Long:  `Serves the retuner over HTTP`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

// Server exposes one engine over HTTP. The engine is single-threaded by
// design, so every handler takes the mutex before touching it.
type Server struct {
	mu      sync.Mutex
	session string
	rec     *emit.Recorder
	eng     *engine.Engine
}

func NewServer() *Server {
	rec := &emit.Recorder{}
	return &Server{
		session: uuid.New().String(),
		rec:     rec,
		eng:     engine.New(rec),
	}
}

func (s *Server) Router() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/events", s.HandleNoteEvent).Methods("POST")
	router.HandleFunc("/notes/off", s.HandleAllNotesOff).Methods("POST")
	router.HandleFunc("/config/limit", s.HandleSetLimit).Methods("PUT")
	router.HandleFunc("/config/mean", s.HandleSetMean).Methods("PUT")
	router.HandleFunc("/config/intensity", s.HandleSetIntensity).Methods("PUT")
	router.HandleFunc("/state", s.HandleState).Methods("GET")
	return cors.Default().Handler(router)
}

func writeError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

func writeMessages(w http.ResponseWriter, lines []string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(model.EventResponse{Messages: lines})
}

func (s *Server) HandleNoteEvent(w http.ResponseWriter, r *http.Request) {
	var input model.NoteEventRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("could not unmarshal request body: %w", err))
		return
	}

	s.mu.Lock()
	s.eng.NoteEvent(input.Pitch, input.Velocity)
	lines := s.rec.Drain()
	s.mu.Unlock()

	writeMessages(w, lines)
}

func (s *Server) HandleAllNotesOff(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.eng.AllNotesOff()
	lines := s.rec.Drain()
	s.mu.Unlock()

	writeMessages(w, lines)
}

func (s *Server) HandleSetLimit(w http.ResponseWriter, r *http.Request) {
	var input model.ConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("could not unmarshal request body: %w", err))
		return
	}

	limit, err := strconv.Atoi(input.Value)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid tuning limit: %q", input.Value))
		return
	}

	s.mu.Lock()
	err = s.eng.SetLimit(limit)
	lines := s.rec.Drain()
	s.mu.Unlock()

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeMessages(w, lines)
}

func (s *Server) HandleSetMean(w http.ResponseWriter, r *http.Request) {
	var input model.ConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("could not unmarshal request body: %w", err))
		return
	}

	on, err := engine.ParseMeanMode(input.Value)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	s.eng.SetMeanMode(on)
	lines := s.rec.Drain()
	s.mu.Unlock()

	writeMessages(w, lines)
}

func (s *Server) HandleSetIntensity(w http.ResponseWriter, r *http.Request) {
	var input model.ConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("could not unmarshal request body: %w", err))
		return
	}

	intensity, err := strconv.ParseFloat(input.Value, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid intensity: %q", input.Value))
		return
	}

	s.mu.Lock()
	s.eng.SetIntensity(intensity)
	lines := s.rec.Drain()
	s.mu.Unlock()

	writeMessages(w, lines)
}

func (s *Server) HandleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := model.StateResponse{
		Session:  s.session,
		Snapshot: s.eng.Snapshot(),
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func serve() {
	s := NewServer()
	addr := constants.GetHTTPAddr()
	log.Printf("adaptune serving on %v (session %v)\n", addr, s.session)
	log.Fatal(http.ListenAndServe(addr, s.Router()))
}
