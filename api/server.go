package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"github.com/saeidalz13/battleship-ai/db/sqlc"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
	mc "github.com/saeidalz13/battleship-ai/models/connection"
)

const (
	StageProd = "prod"
	StageDev  = "dev"

	RouteBattleship = "/battleship"
	RouteHealth     = "/healthz"
	RouteAnalytics  = "/analytics"
)

var defaultPort = 9191

type Server struct {
	port           int
	stage          string
	router         *way.Router
	analytics      *sqlc.AnalyticsManager
	SessionManager *mc.BattleshipSessionManager
	GameManager    *mb.BattleshipGameManager
	Processor      RequestProcessor
}

type Option func(*Server) error

func NewServer(sessionManager *mc.BattleshipSessionManager, gameManager *mb.BattleshipGameManager, optFuncs ...Option) *Server {
	server := Server{
		port:           defaultPort,
		stage:          StageDev,
		SessionManager: sessionManager,
		GameManager:    gameManager,
		analytics:      sqlc.NewAnalyticsManager(nil),
	}
	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			panic(err)
		}
	}

	server.Processor = NewRequestProcessor(sessionManager, gameManager, server.analytics)
	server.routes()
	return &server
}

func WithPort(port int) Option {
	return func(s *Server) error {
		if port <= 0 || port > 65535 {
			return fmt.Errorf("invalid port: %d", port)
		}
		s.port = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if stage != StageProd && stage != StageDev {
			return fmt.Errorf("invalid type of development stage: %s", stage)
		}
		s.stage = stage
		return nil
	}
}

func WithAnalytics(analytics *sqlc.AnalyticsManager) Option {
	return func(s *Server) error {
		s.analytics = analytics
		return nil
	}
}

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.Handle(http.MethodGet, RouteBattleship, s.Processor)
	s.router.HandleFunc(http.MethodGet, RouteHealth, s.handleHealth)
	s.router.HandleFunc(http.MethodGet, RouteAnalytics, s.handleAnalytics)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", s.port)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorln("failed to encode response:", err)
	}
}

type RespHealth struct {
	Stage    string `json:"stage"`
	Games    int    `json:"games"`
	Sessions int    `json:"sessions"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RespHealth{
		Stage:    s.stage,
		Games:    s.GameManager.GamesCount(),
		Sessions: s.SessionManager.SessionsCount(),
	})
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	if !s.analytics.Enabled() {
		writeJSON(w, http.StatusServiceUnavailable, mc.NewRespErr("", "analytics disabled"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), sqlc.QuerierCtxTimeout)
	defer cancel()

	stats, err := s.analytics.GetServerStats(ctx, s.Processor.inet())
	if err != nil {
		log.Errorln("analytics:", err)
		writeJSON(w, http.StatusInternalServerError, mc.NewRespErr(err.Error(), "failed to fetch analytics"))
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ListenAndServe blocks until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: time.Second * 10,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("stage", s.stage).Infof("listening to port %d", s.port)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
