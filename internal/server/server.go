// Package server assembles the HTTP surface over the state container:
// the JSON API, the WebSocket event bridge, and Prometheus metrics.
package server

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dukerupert/satpocket/internal/event"
	"github.com/dukerupert/satpocket/internal/handler"
	"github.com/dukerupert/satpocket/internal/middleware"
	"github.com/dukerupert/satpocket/internal/state"
	ws "github.com/dukerupert/satpocket/internal/websocket"
)

type Server struct {
	store  *state.Store
	hub    *ws.Hub
	logger *slog.Logger

	userH        *handler.UserHandler
	choreH       *handler.ChoreHandler
	achievementH *handler.AchievementHandler
	lessonH      *handler.LessonHandler
	parentH      *handler.ParentHandler
	dataH        *handler.DataHandler
}

// New wires handlers, bridges the event bus onto the WebSocket hub, and
// starts the achievement watcher.
func New(store *state.Store, logger *slog.Logger) *Server {
	s := &Server{
		store:        store,
		hub:          ws.NewHub(logger.With("component", "websocket")),
		logger:       logger,
		userH:        handler.NewUserHandler(store),
		choreH:       handler.NewChoreHandler(store),
		achievementH: handler.NewAchievementHandler(store),
		lessonH:      handler.NewLessonHandler(store),
		parentH:      handler.NewParentHandler(store),
		dataH:        handler.NewDataHandler(store),
	}

	s.bridgeEvents()
	WatchAchievements(store)
	return s
}

// Hub exposes the WebSocket hub (used by tests).
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

// bridgeEvents forwards every bus event to connected WebSocket clients.
func (s *Server) bridgeEvents() {
	kinds := []event.Kind{
		event.KindStoreInitialized,
		event.KindStoreReset,
		event.KindUserUpdated,
		event.KindChoreAdded,
		event.KindChoreUpdated,
		event.KindChoreDeleted,
		event.KindChoreCompleted,
		event.KindTransactionAdded,
		event.KindBalanceChanged,
		event.KindLevelUp,
		event.KindAchievementUnlocked,
		event.KindLessonCompleted,
	}
	for _, kind := range kinds {
		s.store.Bus().Subscribe(kind, s.hub.BroadcastEvent)
	}
}

// Router builds the HTTP mux.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.dataH.Health)
	mux.HandleFunc("GET /api/state", s.dataH.State)

	mux.HandleFunc("GET /api/user", s.userH.Get)
	mux.HandleFunc("PATCH /api/user", s.userH.Patch)

	mux.HandleFunc("GET /api/chores", s.choreH.List)
	mux.HandleFunc("POST /api/chores", s.choreH.Create)
	mux.HandleFunc("PATCH /api/chores/{id}", s.choreH.Update)
	mux.HandleFunc("DELETE /api/chores/{id}", s.choreH.Delete)
	mux.HandleFunc("POST /api/chores/{id}/complete", s.choreH.Complete)

	mux.HandleFunc("GET /api/transactions", s.dataH.Transactions)
	mux.HandleFunc("GET /api/achievements", s.achievementH.List)

	mux.HandleFunc("GET /api/lessons", s.lessonH.List)
	mux.HandleFunc("POST /api/lessons/{id}/complete", s.lessonH.Complete)

	mux.HandleFunc("POST /api/parent/pin", s.parentH.SetPIN)
	mux.HandleFunc("POST /api/parent/verify", s.parentH.VerifyPIN)
	mux.HandleFunc("POST /api/parent/exit", s.parentH.ExitParentMode)

	mux.HandleFunc("GET /api/export", s.dataH.Export)
	mux.HandleFunc("POST /api/import", s.dataH.Import)
	mux.HandleFunc("POST /api/reset", s.dataH.Reset)

	mux.HandleFunc("GET /ws", ws.Handler(s.hub))
	mux.Handle("GET /metrics", promhttp.Handler())

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}
