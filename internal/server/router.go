package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/ai-tool-advisor/internal/ai"
	"github.com/spigell/ai-tool-advisor/internal/feedback"
	"github.com/spigell/ai-tool-advisor/internal/logger"
	"github.com/spigell/ai-tool-advisor/internal/recommend"
	"github.com/spigell/ai-tool-advisor/internal/server/middleware"
	"github.com/spigell/ai-tool-advisor/internal/survey"
)

const shutdownTimeout = 10 * time.Second

// Deps are the services the HTTP surface is built on. A nil Feedback makes the
// feedback routes answer 503.
type Deps struct {
	Engine    *recommend.Engine
	Sessions  survey.Store
	Explainer ai.Explainer
	Feedback  feedback.Store
	Logger    *zap.Logger
	Debug     bool
}

// NewRouter wires the middleware and every route.
func NewRouter(deps Deps) *gin.Engine {
	if deps.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	log := logger.WithFields(deps.Logger)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logging(log), middleware.Recovery(log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	NewHandler(deps).RegisterRoutes(api)

	return r
}

// Serve runs handler on addr until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, log *zap.Logger) error {
	log = logger.WithFields(log)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
