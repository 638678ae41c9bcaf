// Package http exposes the JSON API: expense CRUD, dashboard summaries
// and the export surface (quick, advanced, templates, history, schedules,
// integrations).
package http

import (
	"container/list"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	applog "outgo/internal/log"
	"outgo/internal/services"
	"outgo/internal/storage"
)

// lruCache is a small TTL cache used for the dashboard summary, which is
// recomputed from the full expense list on every hit otherwise.
type lruCache[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
}

type cacheItem[T any] struct {
	key       string
	data      T
	expiresAt time.Time
}

func newLRUCache[T any](maxSize int, ttl time.Duration) *lruCache[T] {
	return &lruCache[T]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

func (c *lruCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, exists := c.items[key]
	if !exists {
		return zero, false
	}

	item := elem.Value.(*cacheItem[T])
	if time.Now().After(item.expiresAt) {
		c.removeElement(elem)
		return zero, false
	}

	c.lru.MoveToFront(elem)
	return item.data, true
}

func (c *lruCache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := &cacheItem[T]{
		key:       key,
		data:      data,
		expiresAt: time.Now().Add(c.ttl),
	}

	if elem, exists := c.items[key]; exists {
		elem.Value = item
		c.lru.MoveToFront(elem)
		return
	}

	elem := c.lru.PushFront(item)
	c.items[key] = elem

	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

func (c *lruCache[T]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element)
	c.lru.Init()
}

func (c *lruCache[T]) removeElement(elem *list.Element) {
	item := elem.Value.(*cacheItem[T])
	delete(c.items, item.key)
	c.lru.Remove(elem)
}

// Server wires the stores and services behind the JSON API.
type Server struct {
	httpServer *http.Server
	router     *mux.Router
	logger     *applog.Logger

	expenses  *storage.ExpenseStore
	exports   *services.ExportService
	schedules *services.ScheduleService

	dashCache *lruCache[dashboardResponse]
}

func NewServer(
	port string,
	logger *applog.Logger,
	expenses *storage.ExpenseStore,
	exports *services.ExportService,
	schedules *services.ScheduleService,
) *Server {
	s := &Server{
		logger:    logger.WithComponent("http"),
		expenses:  expenses,
		exports:   exports,
		schedules: schedules,
		dashCache: newLRUCache[dashboardResponse](8, 30*time.Second),
	}

	s.router = s.routes()
	s.httpServer = &http.Server{
		Addr:         ":" + port,
		Handler:      applog.Middleware(s.logger)(s.router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api.HandleFunc("/expenses", s.handleListExpenses).Methods(http.MethodGet)
	api.HandleFunc("/expenses", s.handleCreateExpense).Methods(http.MethodPost)
	api.HandleFunc("/expenses/{id}", s.handleUpdateExpense).Methods(http.MethodPut)
	api.HandleFunc("/expenses/{id}", s.handleDeleteExpense).Methods(http.MethodDelete)
	api.HandleFunc("/categories", s.handleCategories).Methods(http.MethodGet)

	api.HandleFunc("/dashboard", s.handleDashboard).Methods(http.MethodGet)

	api.HandleFunc("/export/quick", s.handleQuickExport).Methods(http.MethodGet)
	api.HandleFunc("/export/advanced", s.handleAdvancedExport).Methods(http.MethodPost)
	api.HandleFunc("/export/template", s.handleTemplateExport).Methods(http.MethodPost)
	api.HandleFunc("/export/templates", s.handleTemplates).Methods(http.MethodGet)
	api.HandleFunc("/export/history", s.handleHistory).Methods(http.MethodGet)
	api.HandleFunc("/export/history", s.handleClearHistory).Methods(http.MethodDelete)

	api.HandleFunc("/schedules", s.handleListSchedules).Methods(http.MethodGet)
	api.HandleFunc("/schedules", s.handleCreateSchedule).Methods(http.MethodPost)
	api.HandleFunc("/schedules/{id}/toggle", s.handleToggleSchedule).Methods(http.MethodPost)
	api.HandleFunc("/schedules/{id}", s.handleDeleteSchedule).Methods(http.MethodDelete)

	api.HandleFunc("/integrations", s.handleIntegrations).Methods(http.MethodGet)
	api.HandleFunc("/integrations/{provider}/toggle", s.handleToggleIntegration).Methods(http.MethodPost)

	return r
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.InfoContext(ctx, "HTTP server shutting down")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}
