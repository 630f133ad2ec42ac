package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vk/phasegrid/internal/ctxlog"
)

// scheduleResponse is the body of GET /schedule.
type scheduleResponse struct {
	Order  []string `json:"order"`
	State  string   `json:"state"`
	Frames uint64   `json:"frames"`
}

// router builds the HTTP handler of the health check server.
func (a *App) router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", a.healthHandler)
	r.GET("/schedule", a.scheduleHandler)
	return r
}

func (a *App) healthHandler(c *gin.Context) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", c.ClientIP(), "path", c.Request.URL.Path)
	c.String(http.StatusOK, "OK\n")
}

func (a *App) scheduleHandler(c *gin.Context) {
	c.JSON(http.StatusOK, scheduleResponse{
		Order:  a.schedule.Names(),
		State:  a.schedule.State().String(),
		Frames: a.Frames(),
	})
}

// startHealthcheckServer runs the health check HTTP server in the background.
func (a *App) startHealthcheckServer(ctx context.Context, port int) *http.Server {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Configuring health check server.")

	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:    addr,
		Handler: a.router(),
	}

	go func() {
		logger.Info("🩺 Health check server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Health check server failed unexpectedly", "error", err)
		}
	}()
	return srv
}

func (a *App) closeHealthcheckServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a.logger.Debug("🩺 Shutting down health check server...")
	if err := srv.Shutdown(ctx); err != nil {
		a.logger.Error("Health check server shutdown failed", "error", err)
	}
}
