package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"style-watcher/pkg/core"
)

// DefaultSocketPath is where a running instance listens.
const DefaultSocketPath = "/tmp/style-watcher.sock"

const (
	CommandCapture = "capture"
	CommandShow    = "show"
	CommandQuery   = "query"
)

type Request struct {
	Command string `json:"command"`
	Text    string `json:"text,omitempty"`
}

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Handler runs the commands a client can send. Each call starts the work
// and returns; results show up in the result window.
type Handler interface {
	Capture() error
	Show() error
	Query(text string) error
}

type Server struct {
	path    string
	handler Handler
	log     core.Logger
}

func NewServer(path string, handler Handler, log core.Logger) *Server {
	if path == "" {
		path = DefaultSocketPath
	}
	return &Server{path: path, handler: handler, log: log}
}

// Listen binds the socket, replacing a stale socket file.
func (s *Server) Listen() (net.Listener, error) {
	// Remove the socket file if it already exists
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to remove existing socket file: %w", err)
	}

	// Create the directory for the socket file
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create socket directory: %w", err)
	}

	listener, err := net.Listen("unix", s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to start socket server: %w", err)
	}

	s.log.Info("Socket server started", "path", s.path)
	return listener, nil
}

// Serve accepts connections until ctx is done or the listener fails.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	go func() {
		<-ctx.Done()
		listener.Close()
	}()
	defer os.Remove(s.path)

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				s.log.Debug("Socket server stopped", "path", s.path)
				return nil
			}
			s.log.Error("Failed to accept connection", err)
			return fmt.Errorf("accept: %w", err)
		}

		s.log.Debug("New connection accepted", "remote_addr", conn.RemoteAddr())
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))

	var req Request
	decoder := json.NewDecoder(conn)
	if err := decoder.Decode(&req); err != nil {
		s.log.Error("Failed to decode request", err)
		return
	}

	s.log.Info("Received request", "command", req.Command)

	resp := s.dispatch(req)

	encoder := json.NewEncoder(conn)
	if err := encoder.Encode(resp); err != nil {
		s.log.Error("Failed to encode response", err)
	} else {
		s.log.Debug("Response sent successfully", "status", resp.Status)
	}
}

func (s *Server) dispatch(req Request) Response {
	var (
		err error
		ok  string
	)

	switch req.Command {
	case CommandCapture:
		err = s.handler.Capture()
		ok = "Capture started"
	case CommandShow:
		err = s.handler.Show()
		ok = "Window shown"
	case CommandQuery:
		if req.Text == "" {
			return Response{Status: "error", Message: "query needs text"}
		}
		err = s.handler.Query(req.Text)
		ok = "Query started"
	default:
		s.log.Error("Unknown command received", fmt.Errorf("command: %s", req.Command))
		return Response{Status: "error", Message: "Unknown command"}
	}

	if err != nil {
		s.log.Error("Command failed", err, "command", req.Command)
		return Response{Status: "error", Message: err.Error()}
	}
	return Response{Status: "success", Message: ok}
}
