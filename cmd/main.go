package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/ThomasRolland/comptalib/db"
	"github.com/ThomasRolland/comptalib/internal/auth"
	"github.com/ThomasRolland/comptalib/internal/company"
	"github.com/ThomasRolland/comptalib/internal/config"
	"github.com/ThomasRolland/comptalib/internal/user"
	"github.com/ThomasRolland/comptalib/internal/web"
	"github.com/ThomasRolland/comptalib/middleware"
)

var (
	infoLogger  = log.New(os.Stdout, "", log.LstdFlags)
	errorLogger = log.New(os.Stderr, "", log.LstdFlags)
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		errorLogger.Fatalf("Failed to load configuration: %v", err)
	}

	infoLogger.Println("Using SQLite database")
	sqliteDB, err := db.ConnectToSQLite(cfg.SQLitePath)
	if err != nil {
		errorLogger.Fatalf("Failed to connect to SQLite: %v", err)
	}
	defer sqliteDB.Close()

	if err := db.InitializeSchema(sqliteDB); err != nil {
		errorLogger.Fatalf("Failed to initialize database schema: %v", err)
	}

	if err := db.SeedUsers(sqliteDB); err != nil {
		errorLogger.Fatalf("Failed to seed fixture users: %v", err)
	}

	repoFactory := db.NewRepositoryFactory(sqliteDB, cfg.DatabaseName)
	userRepo := repoFactory.NewUserRepository()
	companyRepo := repoFactory.NewCompanyRepository()

	tokenService := auth.NewTokenService(cfg)
	userService := user.NewUserService(userRepo)
	companyService := company.NewCompanyService(companyRepo, userRepo)

	userHandlers := user.NewUserHandlers(userService, tokenService)
	companyHandlers := company.NewCompanyHandlers(companyService)
	authMiddleware := middleware.NewMiddleware(tokenService, userRepo)

	router := web.NewRouter(userHandlers, companyHandlers, authMiddleware, cfg)
	handler := middleware.SetupCORS()(middleware.LoggingMiddleware(router.SetupRoutes()))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		infoLogger.Printf("Listen on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errorLogger.Fatalf("Server ListenAndServe error: %v", err)
		}
	}()

	waitForShutdown(server)
}

func waitForShutdown(server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	infoLogger.Println("Shutting down the server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		errorLogger.Printf("Server Shutdown error: %v", err)
		os.Exit(1)
	}
	infoLogger.Println("Server stopped")
}
