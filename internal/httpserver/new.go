package httpserver

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	tgDelivery "weekly-task-report/internal/report/delivery/telegram"
	"weekly-task-report/internal/webhook"
	"weekly-task-report/pkg/log"
)

const defaultShutdownTimeout = 10 * time.Second

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin             *gin.Engine
	l               log.Logger
	port            int
	mode            string
	environment     string
	shutdownTimeout time.Duration
	ready           func() bool

	// Report domain, webhook mode only
	telegramHandler tgDelivery.Handler
	security        *webhook.SecurityValidator
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger          log.Logger
	Port            int
	Mode            string
	Environment     string
	ShutdownTimeout time.Duration
	// Ready backs /ready; nil means always ready.
	Ready func() bool

	// TelegramHandler is nil in polling mode; the webhook route is then not registered.
	TelegramHandler tgDelivery.Handler
	Security        *webhook.SecurityValidator
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
		ready:           cfg.Ready,
		telegramHandler: cfg.TelegramHandler,
		security:        cfg.Security,
	}
	if srv.shutdownTimeout <= 0 {
		srv.shutdownTimeout = defaultShutdownTimeout
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.mapHandlers()
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
	return nil
}
