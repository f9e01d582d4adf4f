// Package websocket receives hand tracking results from a browser client and
// feeds them to the animation.
package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/esimov/ascii-sphere/detector"
	"github.com/esimov/ascii-sphere/gesture"
)

// HttpParams holds the listening address and the static file root.
type HttpParams struct {
	Address string
	Prefix  string
	Root    string
}

// Handler consumes detection results, typically an *animation.Scene.
type Handler interface {
	OnDetection(f *gesture.Frame) (gesture.Reading, error)
}

// Server serves the browser client and its websocket endpoint.
type Server struct {
	params   HttpParams
	handler  Handler
	detector detector.Detector
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a server. The detector is optional; without it binary
// camera frames are rejected.
func NewServer(p HttpParams, h Handler, d detector.Detector, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		params:   p,
		handler:  h,
		detector: d,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Routes returns the router: /ws for the tracker and the static root under the prefix.
func (s *Server) Routes() (http.Handler, error) {
	root, err := filepath.Abs(s.params.Root)
	if err != nil {
		return nil, err
	}
	prefix := s.params.Prefix
	if prefix == "" {
		prefix = "/"
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Get("/ws", s.wsHandler)
	r.Handle(prefix+"*", http.StripPrefix(prefix, http.FileServer(http.Dir(root))))

	s.logger.Info("serving static files", "root", root, "prefix", prefix)
	return r, nil
}

// ListenAndServe runs the server until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	routes, err := s.Routes()
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              s.params.Address,
		Handler:           routes,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "address", s.params.Address)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("request", "remote", r.RemoteAddr, "method", r.Method, "url", r.URL.String())
		next.ServeHTTP(w, r)
	})
}

// wsHandler upgrades the connection and serves it until the client leaves.
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		if _, ok := err.(websocket.HandshakeError); !ok {
			s.logger.Error("upgrade failed", "err", err)
		}
		return
	}
	logger := s.logger.With("client", uuid.NewString())
	logger.Info("tracker connected", "remote", r.RemoteAddr)

	s.readSocket(conn, logger)
}

// readSocket processes messages from one tracker and answers each with a Status.
func (s *Server) readSocket(conn *websocket.Conn, logger *log.Logger) {
	defer conn.Close()

	for {
		messageType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Error("read failed", "err", err)
			} else {
				logger.Info("tracker disconnected")
			}
			return
		}

		status := s.process(messageType, msg)
		if status.Error != "" {
			logger.Debug("skipping frame", "err", status.Error)
		}
		if err := conn.WriteJSON(status); err != nil {
			logger.Error("write failed", "err", err)
			return
		}
	}
}

// process turns one message into a detection result.
func (s *Server) process(messageType int, msg []byte) Status {
	var frame *gesture.Frame

	switch messageType {
	case websocket.TextMessage:
		var m Landmarks
		if err := json.Unmarshal(msg, &m); err != nil {
			return Status{Error: "invalid landmarks: " + err.Error()}
		}
		frame = m.Frame()
	case websocket.BinaryMessage:
		if s.detector == nil {
			return Status{Error: detector.ErrNoCascade.Error()}
		}
		img, err := decodeImage(msg)
		if err != nil {
			return Status{Error: err.Error()}
		}
		frame, err = s.detector.Detect(img)
		if err != nil {
			return Status{Error: err.Error()}
		}
	default:
		return Status{Error: "unsupported message type"}
	}

	r, err := s.handler.OnDetection(frame)
	if err != nil {
		return Status{Error: err.Error()}
	}
	return Status{Target: r.Target, Distance: r.Distance, Detected: r.Detected}
}
