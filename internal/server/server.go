// Package server provides the HTTP REST API for the reading log.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/booklog-plus/internal/config"
	"github.com/jonathan/booklog-plus/internal/db"
	"github.com/jonathan/booklog-plus/internal/llm"
	"github.com/jonathan/booklog-plus/internal/recs"
	"github.com/jonathan/booklog-plus/internal/server/middleware"
	"github.com/jonathan/booklog-plus/internal/server/ratelimit"
	"github.com/jonathan/booklog-plus/internal/synopsis"
)

// Store is the reading-log persistence surface the handlers depend on.
type Store interface {
	SaveBookEntry(ctx context.Context, userID uuid.UUID, bookName, authorName, reflection string) (uuid.UUID, error)
	ListBookEntries(ctx context.Context, userID uuid.UUID) ([]db.BookLog, error)
	DeleteBookEntry(ctx context.Context, userID uuid.UUID, bookName, authorName string) (bool, error)
	SaveToReadEntry(ctx context.Context, userID uuid.UUID, bookName, authorName string) (uuid.UUID, error)
	ListToReadEntries(ctx context.Context, userID uuid.UUID) ([]db.ToReadEntry, error)
	DeleteToReadEntry(ctx context.Context, userID uuid.UUID, bookName, authorName string) (bool, error)
	UpsertQuizResponse(ctx context.Context, userID uuid.UUID, resp db.QuizResponse) error
	GetQuizResponse(ctx context.Context, userID uuid.UUID) (*db.QuizResponse, error)
}

// Recommender produces recommendation sets from reading history or quiz answers.
type Recommender interface {
	Recommend(ctx context.Context, read []recs.ReadEntry, planned []recs.PlannedEntry) (recs.RecommendationSet, error)
	RecommendFromQuiz(ctx context.Context, profile recs.QuizProfile) (recs.RecommendationSet, error)
}

// Synopsist produces a synopsis for a single book.
type Synopsist interface {
	Synopsis(ctx context.Context, title, author string, source synopsis.Source) string
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	store       Store
	recommender Recommender
	synopses    Synopsist
	llmClient   llm.Client
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	APIKey      string
	MaxAttempts int
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	// Connect to database
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Create model client
	client, err := llm.NewClient(context.Background(), llm.DefaultGeminiConfig(), cfg.APIKey)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}

	recommender := recs.NewGenerator(client)
	if cfg.MaxAttempts > 0 {
		recommender = recommender.WithMaxAttempts(cfg.MaxAttempts)
	}

	s := &Server{
		db:          database,
		store:       database,
		recommender: recommender,
		synopses:    synopsis.NewGenerator(client),
		llmClient:   client,
	}

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	// Initialize authentication services
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)

	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.router()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Long timeout for model-backed endpoints
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// router builds the route table. Routes that operate on a user's shelves
// require a valid bearer token.
func (s *Server) router() http.Handler {
	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())

	mux := http.NewServeMux()

	// Reading log endpoints
	mux.Handle("POST /add", auth(http.HandlerFunc(s.handleAddBook)))
	mux.Handle("GET /books", auth(http.HandlerFunc(s.handleListBooks)))
	mux.Handle("DELETE /books/delete", auth(http.HandlerFunc(s.handleDeleteBook)))

	// To-read list endpoints
	mux.Handle("GET /to-read", auth(http.HandlerFunc(s.handleListToRead)))
	mux.Handle("POST /to-read/add", auth(http.HandlerFunc(s.handleAddToRead)))
	mux.Handle("DELETE /to-read/delete", auth(http.HandlerFunc(s.handleDeleteToRead)))

	// Recommendation endpoints
	mux.Handle("GET /recommend", auth(http.HandlerFunc(s.handleRecommend)))
	mux.Handle("GET /recommend/quiz", auth(http.HandlerFunc(s.handleRecommendFromQuiz)))
	mux.Handle("POST /quiz", auth(http.HandlerFunc(s.handleSaveQuiz)))

	// Synopsis endpoint
	mux.Handle("GET /synopsis", auth(http.HandlerFunc(s.handleSynopsis)))

	// Authentication endpoints
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.Handle("PUT /auth/password", auth(http.HandlerFunc(s.handleUpdatePassword)))

	mux.HandleFunc("GET /health", s.handleHealth)

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			log.Printf("Error closing model client: %v", err)
		}
	}

	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Extract client identifier (IP address)
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleRegister handles user registration requests.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Register(w, r)
}

// handleLogin handles user login requests.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Login(w, r)
}

// handleUpdatePassword handles password update requests for the authenticated user.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	s.authHandler.UpdatePasswordWithUserID(w, r, userID)
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr.
// In the future, this could use X-Forwarded-For header (only from trusted proxies).
func (s *Server) extractClientID(r *http.Request) string {
	// Get IP from RemoteAddr (format: "IP:port")
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If parsing fails, use the whole RemoteAddr
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
