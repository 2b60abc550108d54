// Package server exposes the checker over HTTP: a check API, run
// history, a live lint websocket, SSE analysis events from a watched
// data directory, file browsing and Prometheus metrics.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log"
	"net/http"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	sse "github.com/alexandrevicenzi/go-sse"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/jasonwbarnett/fileserver"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mastercactapus/gcheck/check"
	"github.com/mastercactapus/gcheck/history"
	"github.com/mastercactapus/gcheck/report"
)

const maxBody = 10 << 20

// Config wires a Server. Analyzer and Log default when nil; Store
// may stay nil to disable run history.
type Config struct {
	Analyzer *check.Analyzer
	DataDir  string
	Store    *history.Store
	Log      *zap.Logger
}

// Server handles the HTTP surface. It serves through the embedded
// Handler.
type Server struct {
	http.Handler

	analyzer *check.Analyzer
	dataDir  string
	store    *history.Store
	log      *zap.Logger
	sse      *sse.Server
	upgrader websocket.Upgrader
}

func New(cfg Config) *Server {
	if cfg.Analyzer == nil {
		cfg.Analyzer = check.NewAnalyzer(check.DefaultLimits())
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}

	s := &Server{
		analyzer: cfg.Analyzer,
		dataDir:  cfg.DataDir,
		store:    cfg.Store,
		log:      cfg.Log,
		sse: sse.NewServer(&sse.Options{
			Logger: log.New(io.Discard, "", 0),
		}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/check", s.check).Methods("POST")
	r.HandleFunc("/api/runs", s.runs).Methods("GET")
	r.HandleFunc("/ws/lint", s.lint)
	r.PathPrefix("/events/").Handler(s.sse)
	r.PathPrefix("/files/").Handler(http.StripPrefix("/files/", fileserver.New(http.Dir(cfg.DataDir))))
	r.Handle("/metrics", promhttp.Handler())
	s.Handler = r

	return s
}

// Close shuts down the SSE event hub.
func (s *Server) Close() {
	s.sse.Shutdown()
}

// check analyzes either the request body or, with ?path=, a file
// under the data directory.
func (s *Server) check(w http.ResponseWriter, req *http.Request) {
	var res *check.Result
	var err error

	if p := req.URL.Query().Get("path"); p != "" {
		full, ok := safePath(s.dataDir, p)
		if !ok {
			http.Error(w, "invalid path", http.StatusBadRequest)
			return
		}
		res, err = s.analyzer.AnalyzeFile(full)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			s.log.Error("analyze file", zap.String("path", full), zap.Error(err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	} else {
		name := req.URL.Query().Get("name")
		if name == "" {
			name = "input.nc"
		}
		res, err = s.analyzer.AnalyzeReader(name, http.MaxBytesReader(w, req.Body, maxBody))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	observe(res)
	s.record(res)
	s.publish(res)

	w.Header().Set("Content-Type", "application/json")
	if err := report.JSON(w, res, false); err != nil {
		s.log.Error("write response", zap.Error(err))
	}
}

// runs lists recent analyses from the history store.
func (s *Server) runs(w http.ResponseWriter, req *http.Request) {
	if s.store == nil {
		http.Error(w, "run history disabled", http.StatusNotFound)
		return
	}
	limit := 20
	if v := req.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	runs, err := s.store.Recent(limit)
	if err != nil {
		s.log.Error("list runs", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []history.Run{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(runs); err != nil {
		s.log.Error("write response", zap.Error(err))
	}
}

func (s *Server) record(res *check.Result) {
	if s.store == nil {
		return
	}
	if _, err := s.store.Record(res); err != nil {
		s.log.Warn("record run", zap.String("file", res.File), zap.Error(err))
	}
}

// publish pushes a flat summary to SSE subscribers.
func (s *Server) publish(res *check.Result) {
	data, err := json.Marshal(report.Summarize(res))
	if err != nil {
		s.log.Error("marshal summary", zap.Error(err))
		return
	}
	s.sse.SendMessage("/events/analysis", sse.SimpleMessage(string(data)))
}

// safePath anchors a client-supplied name under base so requests
// cannot climb out of the data directory.
func safePath(base, name string) (string, bool) {
	if filepath.Separator != '/' && strings.ContainsRune(name, filepath.Separator) {
		return "", false
	}
	if base == "" {
		base = "."
	}
	return filepath.Join(base, filepath.FromSlash(path.Clean("/"+name))), true
}
