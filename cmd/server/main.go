package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Meerdlawar/SweetDive/internal"
	"github.com/Meerdlawar/SweetDive/internal/api"
	"github.com/Meerdlawar/SweetDive/internal/handler"
	"github.com/Meerdlawar/SweetDive/internal/metrics"
	"github.com/Meerdlawar/SweetDive/internal/middleware"
	"github.com/Meerdlawar/SweetDive/internal/session"
)

func run() error {
	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Backend API client
	client := api.New(cfg.APIBaseURL, cfg.APITimeout, logger)

	isSecure := !cfg.IsDevelopment()

	// Session store (backend token + cached user)
	sessions := session.NewStore([]byte(cfg.SessionSecret), cfg.SessionName, isSecure, client, logger)

	// Initialize template renderer
	renderer, err := handler.NewRenderer(handler.RendererConfig{
		TemplatesDir: cfg.TemplatesDir,
		Logger:       logger,
		IsDev:        cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("renderer initialization failed: %w", err)
	}

	// Initialize middleware
	authMw := middleware.NewAuthMiddleware(sessions, logger)
	loggingMw := middleware.NewRequestLoggingMiddleware(logger)
	securityMw := middleware.NewSecurityHeadersMiddleware(isSecure)
	metricsAuthMw := middleware.NewMetricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword)
	authLimiter := middleware.NewAuthRateLimiter(logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(client, sessions, renderer, logger)
	dashboardHandler := handler.NewDashboardHandler(client, sessions, renderer, logger)
	customerHandler := handler.NewCustomerHandler(client, sessions, renderer, logger, cfg.PageSize)
	productHandler := handler.NewProductHandler(client, sessions, renderer, logger, cfg.PageSize)
	orderHandler := handler.NewOrderHandler(client, sessions, renderer, logger, cfg.PageSize)
	allergenHandler := handler.NewAllergenHandler(client, sessions, renderer, logger)

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	// Static files
	staticFS := http.FileServer(http.Dir("web/static"))
	mux.Handle("GET /static/", http.StripPrefix("/static/", staticFS))

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics (basic auth when configured)
	mux.Handle("GET /metrics", metricsAuthMw.Handler(promhttp.Handler()))

	// Middleware stacks
	anonOnly := middleware.Stack(authMw.WithUser, authMw.RedirectIfAuthenticated)
	requireUser := middleware.Stack(authMw.WithUser, authMw.RequireUser)

	// Auth routes
	mux.Handle("GET /login", anonOnly(http.HandlerFunc(authHandler.LoginPage)))
	mux.Handle("POST /login", authLimiter.LimitLogin(http.HandlerFunc(authHandler.Login)))
	mux.Handle("GET /register", anonOnly(http.HandlerFunc(authHandler.RegisterPage)))
	mux.Handle("POST /register", authLimiter.LimitRegister(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /logout", requireUser(http.HandlerFunc(authHandler.Logout)))

	// Dashboard
	mux.Handle("GET /{$}", requireUser(http.HandlerFunc(dashboardHandler.Dashboard)))

	// Customers
	mux.Handle("GET /customers", requireUser(http.HandlerFunc(customerHandler.List)))
	mux.Handle("GET /customers/new", requireUser(http.HandlerFunc(customerHandler.Form)))
	mux.Handle("GET /customers/{id}/edit", requireUser(http.HandlerFunc(customerHandler.Form)))
	mux.Handle("POST /customers", requireUser(http.HandlerFunc(customerHandler.Create)))
	mux.Handle("PUT /customers/{id}", requireUser(http.HandlerFunc(customerHandler.Update)))
	mux.Handle("DELETE /customers/{id}", requireUser(http.HandlerFunc(customerHandler.Delete)))

	// Products
	mux.Handle("GET /products", requireUser(http.HandlerFunc(productHandler.List)))
	mux.Handle("GET /products/new", requireUser(http.HandlerFunc(productHandler.Form)))
	mux.Handle("GET /products/{id}/edit", requireUser(http.HandlerFunc(productHandler.Form)))
	mux.Handle("POST /products", requireUser(http.HandlerFunc(productHandler.Create)))
	mux.Handle("PUT /products/{id}", requireUser(http.HandlerFunc(productHandler.Update)))
	mux.Handle("DELETE /products/{id}", requireUser(http.HandlerFunc(productHandler.Delete)))

	// Orders
	mux.Handle("GET /orders", requireUser(http.HandlerFunc(orderHandler.List)))
	mux.Handle("GET /orders/new", requireUser(http.HandlerFunc(orderHandler.Form)))
	mux.Handle("GET /orders/{id}", requireUser(http.HandlerFunc(orderHandler.Detail)))
	mux.Handle("GET /orders/{id}/edit", requireUser(http.HandlerFunc(orderHandler.Form)))
	mux.Handle("POST /orders", requireUser(http.HandlerFunc(orderHandler.Create)))
	mux.Handle("PUT /orders/{id}", requireUser(http.HandlerFunc(orderHandler.Update)))
	mux.Handle("DELETE /orders/{id}", requireUser(http.HandlerFunc(orderHandler.Delete)))
	mux.Handle("POST /orders/{id}/products", requireUser(http.HandlerFunc(orderHandler.AddProduct)))
	mux.Handle("DELETE /orders/{id}/products/{productID}", requireUser(http.HandlerFunc(orderHandler.RemoveProduct)))

	// Allergens
	mux.Handle("GET /allergens", requireUser(http.HandlerFunc(allergenHandler.List)))
	mux.Handle("GET /allergens/overview", requireUser(http.HandlerFunc(allergenHandler.Overview)))
	mux.Handle("GET /allergens/new", requireUser(http.HandlerFunc(allergenHandler.Form)))
	mux.Handle("GET /allergens/{id}/edit", requireUser(http.HandlerFunc(allergenHandler.Form)))
	mux.Handle("POST /allergens", requireUser(http.HandlerFunc(allergenHandler.Create)))
	mux.Handle("PUT /allergens/{id}", requireUser(http.HandlerFunc(allergenHandler.Update)))
	mux.Handle("DELETE /allergens/{id}", requireUser(http.HandlerFunc(allergenHandler.Delete)))

	// Outer middleware: CSRF wraps everything behind logging, security
	// headers and request metrics. htmx sends the token via the
	// X-CSRF-Token header configured on <body>.
	csrfProtect := csrf.Protect(
		[]byte(cfg.CSRFSecret),
		csrf.Secure(isSecure),
		csrf.Path("/"),
		csrf.RequestHeader("X-CSRF-Token"),
	)

	root := middleware.Stack(
		loggingMw.Handler,
		securityMw.Handler,
		metrics.Middleware,
	)(csrfProtect(mux))

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: root,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env, "api", cfg.APIBaseURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
		}
	}()

	<-sigChan
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Graceful shutdown complete")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
