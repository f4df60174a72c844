package main

import (
	"context"
	"log"
	"os"

	"github.com/Parasuram76/Task-Management-System/config"
	"github.com/Parasuram76/Task-Management-System/database"
	"github.com/Parasuram76/Task-Management-System/modules/api"
	"github.com/Parasuram76/Task-Management-System/modules/auth"
	"github.com/Parasuram76/Task-Management-System/modules/cache"
	"github.com/Parasuram76/Task-Management-System/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

func main() {
	log.Println("=== Task Management System ===")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Printf("Database: %s (%s)", db.Driver(), db.Target())

	logLevel := mono.LogLevelInfo
	if cfg.LogLevel == "error" {
		logLevel = mono.LogLevelError
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(logLevel),
		mono.WithLogFormat(mono.LogFormatText),
		mono.WithNATSPort(cfg.NATSPort),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// The task-list cache is optional; the app runs against the store alone.
	// The task module implements UsePluginModule and receives the plugin.
	if cfg.RedisAddr != "" {
		if err := app.RegisterPlugin(cache.NewPluginModule(cfg.RedisAddr, cfg.CacheTTL, app.Logger()), "cache"); err != nil {
			log.Fatalf("Failed to register cache plugin: %v", err)
		}
		log.Printf("Task list cache: redis at %s (TTL: %s)", cfg.RedisAddr, cfg.CacheTTL)
	}

	// Order: independent modules first, then dependent modules
	app.Register(auth.NewModule(db, auth.Config{
		JWT: auth.JWTConfig{
			SecretKey: cfg.JWTSecret,
			TTL:       cfg.SessionTTL,
			Issuer:    cfg.JWTIssuer,
		},
		BcryptCost: cfg.BcryptCost,
	}, app.Logger()))
	app.Register(task.NewModule(db, app.Logger()))
	app.Register(api.NewModule(api.Config{
		Port:       cfg.Port,
		CORSOrigin: cfg.CORSOrigin,
		Cookie: api.CookieConfig{
			TTL:    cfg.SessionTTL,
			Secure: cfg.Production(),
		},
	}, db, app.Logger()))

	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	wait := gfshutdown.GracefulShutdown(context.Background(), cfg.ShutdownTimeout, map[string]gfshutdown.Operation{
		"mono-app": func(ctx context.Context) error {
			log.Println("Graceful shutdown initiated...")
			return app.Stop(ctx)
		},
		"database": func(ctx context.Context) error {
			return db.Close(ctx)
		},
	})

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg *config.Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Printf("Environment: %s", cfg.Env)
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", cfg.Port)
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /auth/register         - Register an administrator (alias /auth/admin-register)")
	log.Println("  POST   /auth/login            - Log in and receive the session cookie (alias /auth/admin-login)")
	log.Println("  POST   /auth/logout           - Clear the session cookie")
	log.Println("  GET    /health                - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require the authToken cookie):")
	log.Println("  GET    /auth/check-auth       - Current administrator")
	log.Println("  POST   /tasks/create          - Create a task")
	log.Println("  GET    /tasks/get             - List your tasks, newest first")
	log.Println("  PUT    /tasks/update/:id      - Update one of your tasks")
	log.Println("  DELETE /tasks/delete/:id      - Delete one of your tasks")
	log.Println("  GET    /tasks/stats           - Count your tasks per status")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
