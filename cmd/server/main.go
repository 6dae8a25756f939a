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

	"github.com/Adityadhvn/Partier/internal/config"
	"github.com/Adityadhvn/Partier/internal/database"
	"github.com/Adityadhvn/Partier/internal/handlers"
	"github.com/Adityadhvn/Partier/internal/middleware"
	"github.com/Adityadhvn/Partier/internal/repositories"
	"github.com/Adityadhvn/Partier/internal/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// repos groups the repository interfaces the services consume, so the
// postgres repositories and the memory store can be wired
// interchangeably
type repos struct {
	users      services.UserRepository
	events     services.EventRepository
	tickets    services.TicketRepository
	performers services.PerformerRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration:", err)
	}

	store, closeStore, err := buildRepositories(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if closeStore != nil {
		defer closeStore()
	}

	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   !cfg.IsDevelopment(),
		SameSite: http.SameSiteLaxMode,
	}

	// Services
	authService := services.NewAuthService(store.users)
	eventService := services.NewEventService(store.events, store.performers)
	ticketService := services.NewTicketService(store.tickets, store.events)
	scannerService := services.NewScannerService(ticketService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, sessionStore)
	eventHandler := handlers.NewEventHandler(eventService)
	ticketHandler := handlers.NewTicketHandler(ticketService)
	scanHandler := handlers.NewScanHandler(scannerService)
	adminHandler := handlers.NewAdminHandler(authService)

	authMiddleware := middleware.NewAuthMiddleware(authService, sessionStore)

	router := buildRouter(authHandler, eventHandler, ticketHandler, scanHandler, adminHandler, authMiddleware)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
	log.Println("server stopped")
}

// buildRepositories wires either the postgres repositories or, when no
// DATABASE_URL is configured, the seeded in-memory store
func buildRepositories(cfg *config.Config) (*repos, func(), error) {
	if cfg.Database.URL == "" {
		log.Println("no DATABASE_URL configured, using in-memory store with seed data")

		memory := repositories.NewMemoryStore()
		if err := memory.Seed(); err != nil {
			return nil, nil, fmt.Errorf("failed to seed memory store: %w", err)
		}

		return &repos{
			users:      memory,
			events:     memory,
			tickets:    memory,
			performers: memory,
		}, nil, nil
	}

	db, err := database.NewConnection(cfg.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("database connection established")

	return &repos{
		users:      repositories.NewUserRepository(db.DB),
		events:     repositories.NewEventRepository(db.DB),
		tickets:    repositories.NewTicketRepository(db.DB),
		performers: repositories.NewPerformerRepository(db.DB),
	}, func() { db.Close() }, nil
}

// buildRouter assembles the middleware stack and the API routes
func buildRouter(
	authHandler *handlers.AuthHandler,
	eventHandler *handlers.EventHandler,
	ticketHandler *handlers.TicketHandler,
	scanHandler *handlers.ScanHandler,
	adminHandler *handlers.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.MetricsMiddleware)
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig()))
	r.Use(authMiddleware.LoadUser)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", eventHandler.ListEvents)
			r.Get("/featured", eventHandler.FeaturedEvents)
			r.Get("/{id}", eventHandler.GetEvent)
			r.Get("/{id}/ticket-types", ticketHandler.EventTicketTypes)
			r.Get("/{id}/performers", eventHandler.EventPerformers)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireOrganizer)
				r.Post("/", eventHandler.CreateEvent)
				r.Put("/{id}", eventHandler.UpdateEvent)
				r.Delete("/{id}", eventHandler.DeleteEvent)
				r.Get("/{id}/tickets", ticketHandler.EventTickets)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireOrganizer)
			r.Post("/ticket-types", ticketHandler.CreateTicketType)
			r.Put("/ticket-types/{id}", ticketHandler.UpdateTicketType)
			r.Post("/performers", eventHandler.CreatePerformer)
		})

		r.Route("/tickets", func(r chi.Router) {
			r.Get("/reference/{reference}", ticketHandler.GetTicketByReference)
			r.Get("/{id}", ticketHandler.GetTicket)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireAuth)
				r.Post("/", ticketHandler.PurchaseTicket)
				r.Get("/user/{userId}", ticketHandler.UserTickets)
			})
		})

		r.Route("/scan", func(r chi.Router) {
			r.Use(authMiddleware.RequireOrganizer)
			r.Post("/sessions", scanHandler.OpenSession)
			r.Get("/sessions/{id}", scanHandler.GetSession)
			r.Post("/sessions/{id}/submit", scanHandler.Submit)
			r.Post("/sessions/{id}/reset", scanHandler.Reset)
		})

		r.Get("/organizer/{id}/events", eventHandler.OrganizerEvents)

		r.Route("/admin", func(r chi.Router) {
			r.Use(authMiddleware.RequireSuperAdmin)
			r.Get("/users", adminHandler.ListUsers)
			r.Put("/users/{id}/organizer", adminHandler.SetOrganizer)
		})
	})

	return r
}
