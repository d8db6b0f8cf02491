// Package server exposes the bot's operational HTTP surface.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/igpeek/igpeek/internal/channel"
)

// ChannelLister reports the currently connected channels.
type ChannelLister func() []channel.Connection

// Server serves the liveness endpoint.
type Server struct {
	echo     *echo.Echo
	logger   *slog.Logger
	addr     string
	channels ChannelLister
	started  time.Time
}

// New builds the ops server. channels may be nil.
func New(addr string, channels ChannelLister, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:     e,
		logger:   log.With(slog.String("component", "server")),
		addr:     addr,
		channels: channels,
		started:  time.Now(),
	}
	e.GET("/healthz", s.healthz)
	return s
}

type healthResponse struct {
	Status   string   `json:"status"`
	Uptime   string   `json:"uptime"`
	Channels []string `json:"channels"`
}

func (s *Server) healthz(c echo.Context) error {
	resp := healthResponse{
		Status:   "ok",
		Uptime:   time.Since(s.started).Round(time.Second).String(),
		Channels: []string{},
	}
	if s.channels != nil {
		for _, conn := range s.channels() {
			if conn.Running() {
				resp.Channels = append(resp.Channels, conn.ChannelType().String())
			}
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// Start serves until Shutdown; it blocks.
func (s *Server) Start() error {
	s.logger.Info("listening", slog.String("addr", s.addr))
	err := s.echo.Start(s.addr)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
