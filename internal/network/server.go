package network

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

// ServerOptions configura o Server. Health e Status são opcionais.
type ServerOptions struct {
	SendBuffer int
	StaticDir  string
	Health     http.Handler
	Status     func() any
	Logger     *logrus.Entry
}

// Server expõe o Hub por WebSocket em /ws e serve as rotas auxiliares.
type Server struct {
	hub      *Hub
	mux      *http.ServeMux
	opts     ServerOptions
	log      *logrus.Entry
	upgrader websocket.Upgrader
}

func NewServer(handler EventHandler, opts ServerOptions) *Server {
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = 256
	}
	if opts.Logger == nil {
		opts.Logger = logrus.NewEntry(logrus.StandardLogger())
	}

	s := &Server{
		hub:  NewHub(handler, opts.Logger),
		mux:  http.NewServeMux(),
		opts: opts,
		log:  opts.Logger.WithField("component", "server"),
		upgrader: websocket.Upgrader{
			// O cliente de navegador pode vir de qualquer origem.
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/ws", s.wsHandler)

	if s.opts.Health != nil {
		s.mux.Handle("/health", s.opts.Health)
	}
	if s.opts.Status != nil {
		s.mux.HandleFunc("/status", s.statusHandler)
	}
	if s.opts.StaticDir != "" {
		s.mux.Handle("/", http.FileServer(http.Dir(s.opts.StaticDir)))
	}
}

// Handler devolve o roteador HTTP completo.
func (s *Server) Handler() http.Handler { return s.mux }

// wsHandler promove a requisição HTTP para WebSocket e registra o cliente no Hub.
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	client := newClient(conn, s.hub, s.opts.SendBuffer)
	if !s.hub.join(client) {
		conn.Close()
		return
	}
	client.log.Info("client connected")

	go client.writeLoop()
	go client.readLoop()
}

func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(s.opts.Status()); err != nil {
		s.log.WithError(err).Warn("status encode failed")
	}
}

// Listen sobe o Hub e o servidor HTTP e bloqueia até ctx ser cancelado.
// O desligamento espera as requisições em andamento por até shutdownTimeout.
func (s *Server) Listen(ctx context.Context, address string) error {
	go s.hub.Run(ctx)

	srv := &http.Server{
		Addr:              address,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("websocket server listening on ws://%s/ws", address)
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("http server stopped")
	return nil
}
