// Package server wires the hub, the protocol handler and the HTTP surface
// together. Router construction is separate from main so tests can mount
// the full stack on an httptest server.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gws "github.com/gorilla/websocket"

	"github.com/franklenny258/pictionary-game/config"
	"github.com/franklenny258/pictionary-game/hub"
	"github.com/franklenny258/pictionary-game/protocol"
	ws "github.com/franklenny258/pictionary-game/websocket"
)

var upgrader = gws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Server struct {
	hub     *hub.Hub
	handler *protocol.Handler
	router  *gin.Engine
	http    *http.Server
}

func New(cfg config.Config) *Server {
	h := hub.New()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		hub:     h,
		handler: protocol.NewHandler(h),
		router:  router,
	}

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Pictionary relay with chat running")
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/stats", func(c *gin.Context) {
		rooms, clients := h.Stats()
		c.JSON(http.StatusOK, gin.H{"rooms": rooms, "clients": clients})
	})
	router.GET("/ws", s.serveWS)

	s.http = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}
	return s
}

// Router exposes the HTTP handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) Run() error {
	slog.Info("server starting", "addr", s.http.Addr)
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	defer s.hub.Close()
	return s.http.Shutdown(ctx)
}

func (s *Server) serveWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("upgrade error", "error", err)
		return
	}
	ws.NewConn(uuid.New().String(), conn, s.hub, s.handler).Start()
}
