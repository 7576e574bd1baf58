package httpserver

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"realtime-task-manager/internal/middleware"
	"realtime-task-manager/internal/model"
	"realtime-task-manager/internal/task"
	"realtime-task-manager/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin             *gin.Engine
	l               log.Logger
	port            int
	mode            string
	environment     string
	shutdownTimeout time.Duration
	startedAt       time.Time
	mw              middleware.Middleware

	// Task domain
	taskUC task.UseCase
	scope  model.Scope
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger          log.Logger
	Port            int
	Mode            string
	Environment     string
	RateLimitPerMin int
	ShutdownTimeout time.Duration

	// Task domain
	TaskUseCase task.UseCase
	Scope       model.Scope
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		shutdownTimeout: cfg.ShutdownTimeout,
		startedAt:       time.Now(),
		mw:              middleware.New(logger, cfg.RateLimitPerMin),
		taskUC:          cfg.TaskUseCase,
		scope:           cfg.Scope,
	}

	if srv.shutdownTimeout <= 0 {
		srv.shutdownTimeout = 10 * time.Second
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.taskUC == nil {
		return errors.New("task use case is required")
	}
	return nil
}
