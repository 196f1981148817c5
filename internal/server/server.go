package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"trolli/internal/auth"
	"trolli/internal/config"
	"trolli/internal/handler"
	"trolli/internal/middleware"
	"trolli/internal/session"
	"trolli/internal/store"
	"trolli/internal/ws"
)

type Server struct {
	Engine  *gin.Engine
	Handler http.Handler
	Store   *store.Store
	Hub     *ws.Hub
	Config  *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	st, err := store.Open(cfg.DataFile)
	if err != nil {
		return nil, err
	}
	log.Printf("data file loaded: %s", cfg.DataFile)

	sess, err := session.Open(cfg.SessionFile)
	if err != nil {
		return nil, err
	}

	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTExpiryHours)

	// Mutation handlers notify the hub synchronously, so its loop must be
	// consuming before the first request is served.
	hub := ws.NewHub()
	go hub.Run()
	refresh := handler.NewRefresher(st, hub)

	// Setup Gin
	r := gin.Default()
	r.Use(middleware.RequestID())

	// Initialize handlers
	authHandler := handler.NewAuthHandler(st, tokens, sess)
	boardHandler := handler.NewBoardHandler(st, refresh)
	listHandler := handler.NewListHandler(st, refresh)
	itemHandler := handler.NewItemHandler(st, refresh)
	memberHandler := handler.NewMemberHandler(st)
	viewHandler := handler.NewViewHandler(st)
	wsHandler := handler.NewWSHandler(hub, tokens)

	// Public routes
	r.POST("/api/register", authHandler.Register)
	r.POST("/api/login", authHandler.Login)
	r.GET("/api/session", authHandler.Session)
	r.GET("/api/ws", wsHandler.Serve)

	// Protected routes - require authentication
	authorized := r.Group("/api")
	authorized.Use(middleware.AuthRequired(tokens))
	{
		authorized.POST("/logout", authHandler.Logout)
		authorized.PUT("/session/theme", authHandler.SetTheme)

		// Board routes
		authorized.POST("/boards", boardHandler.Create)
		authorized.GET("/boards", boardHandler.GetAll)
		authorized.GET("/boards/:id", boardHandler.GetByID)
		authorized.PUT("/boards/:id", boardHandler.Update)
		authorized.DELETE("/boards/:id", boardHandler.Delete)

		// List routes
		authorized.POST("/boards/:id/lists", listHandler.Create)
		authorized.PUT("/boards/:id/lists/:listID", listHandler.Update)
		authorized.DELETE("/boards/:id/lists/:listID", listHandler.Delete)
		authorized.POST("/boards/:id/swap-lists", listHandler.Swap)

		// Item routes
		authorized.POST("/boards/:id/lists/:listID/items", itemHandler.Create)
		authorized.PUT("/boards/:id/lists/:listID/items/:itemID", itemHandler.Update)
		authorized.DELETE("/boards/:id/lists/:listID/items/:itemID", itemHandler.Delete)
		authorized.POST("/boards/:id/lists/:listID/items/:itemID/toggle", itemHandler.ToggleComplete)
		authorized.POST("/boards/:id/lists/:listID/visible", itemHandler.Visible)

		// Drag-and-drop
		authorized.POST("/boards/:id/drop", itemHandler.Drop)

		// View entry points
		authorized.GET("/views/boards", viewHandler.AllBoards)
		authorized.GET("/views/board/:index", viewHandler.Board)

		// Members management - admin only
		members := authorized.Group("/members")
		members.Use(middleware.AdminOnly())
		{
			members.GET("", memberHandler.GetAll)
			members.POST("", memberHandler.Create)
			members.DELETE("/:name", memberHandler.Delete)
		}
	}

	// The GUI client runs on its own origin.
	corsWrapper := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		AllowCredentials: true,
	})

	return &Server{
		Engine:  r,
		Handler: corsWrapper.Handler(r),
		Store:   st,
		Hub:     hub,
		Config:  cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Handler,
	}

	go func() {
		log.Printf("server running on port %s", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %s", err)
	}
	s.Hub.Stop()

	log.Println("server exited properly")
}
