package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-wordpress/internal/capability"
	"github.com/giantswarm/mcp-wordpress/internal/config"
	"github.com/giantswarm/mcp-wordpress/internal/metrics"
	"github.com/giantswarm/mcp-wordpress/pkg/logging"
)

const (
	sseEndpoint       = "/sse"
	messageEndpoint   = "/message"
	streamingEndpoint = "/mcp"

	keepAliveInterval = 30 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server runs the MCP server on the configured transport.
type Server struct {
	config     config.ServerConfig
	dispatcher *capability.Dispatcher
	collector  *metrics.Collector
	version    string
	stdin      io.Reader
	stdout     io.Writer

	mu         sync.RWMutex
	mcpServer  *server.MCPServer
	httpServer *http.Server
	sseServer  *server.SSEServer
	listener   net.Listener
	cancelFunc context.CancelFunc

	wg   sync.WaitGroup
	done chan struct{}
	err  error
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics serves the collector on /metrics and counts HTTP requests.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Server) {
		s.collector = c
	}
}

// WithVersion sets the version announced to MCP clients.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// WithStdio overrides the streams used by the stdio transport.
func WithStdio(in io.Reader, out io.Writer) Option {
	return func(s *Server) {
		s.stdin = in
		s.stdout = out
	}
}

// New creates a server for the given transport configuration.
func New(cfg config.ServerConfig, dispatcher *capability.Dispatcher, opts ...Option) *Server {
	s := &Server{
		config:     cfg,
		dispatcher: dispatcher,
		version:    "dev",
		stdin:      os.Stdin,
		stdout:     os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start starts the configured transport. HTTP transports bind their
// listener before Start returns, so address errors are reported directly.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mcpServer != nil {
		return fmt.Errorf("MCP server already started")
	}

	mcpServer := NewMCPServer(s.dispatcher, s.version)
	runCtx, cancel := context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.err = nil

	switch s.config.Transport {
	case config.MCPTransportStdio:
		logging.Info("Server", "Starting MCP server with stdio transport")
		stdioServer := server.NewStdioServer(mcpServer)
		s.run(func() error {
			err := stdioServer.Listen(runCtx, s.stdin, s.stdout)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})

	case config.MCPTransportSSE, config.MCPTransportStreamableHTTP:
		if err := s.startHTTP(mcpServer); err != nil {
			cancel()
			return err
		}

	default:
		cancel()
		return fmt.Errorf("unsupported transport %q", s.config.Transport)
	}

	s.mcpServer = mcpServer
	s.cancelFunc = cancel
	return nil
}

// startHTTP binds the listener and serves the router in the background.
// Callers hold s.mu.
func (s *Server) startHTTP(mcpServer *server.MCPServer) error {
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	httpServer := &http.Server{
		ReadHeaderTimeout: 10 * time.Second,
	}

	var mount func(r chi.Router)
	if s.config.Transport == config.MCPTransportSSE {
		logging.Info("Server", "Starting MCP server with SSE transport on %s", listener.Addr())
		s.sseServer = server.NewSSEServer(
			mcpServer,
			server.WithBaseURL("http://"+listener.Addr().String()),
			server.WithSSEEndpoint(sseEndpoint),
			server.WithMessageEndpoint(messageEndpoint),
			server.WithKeepAlive(true),
			server.WithKeepAliveInterval(keepAliveInterval),
			server.WithHTTPServer(httpServer),
		)
		sseServer := s.sseServer
		mount = func(r chi.Router) {
			r.Handle(sseEndpoint, sseServer.SSEHandler())
			r.Handle(messageEndpoint, sseServer.MessageHandler())
		}
	} else {
		logging.Info("Server", "Starting MCP server with streamable-http transport on %s", listener.Addr())
		streamable := server.NewStreamableHTTPServer(
			mcpServer,
			server.WithEndpointPath(streamingEndpoint),
		)
		mount = func(r chi.Router) {
			r.Handle(streamingEndpoint, streamable)
		}
	}

	httpServer.Handler = s.newRouter(mount)
	s.httpServer = httpServer
	s.listener = listener

	s.run(func() error {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	return nil
}

// run executes the transport loop in the background and records its result.
func (s *Server) run(serve func() error) {
	done := s.done
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := serve()
		if err != nil {
			logging.Error("Server", err, "MCP transport %s stopped", s.config.Transport)
		} else {
			logging.Debug("Server", "MCP transport %s stopped", s.config.Transport)
		}
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		close(done)
	}()
}

// Done is closed when the transport stops, either because Stop was called
// or because it ended on its own (stdin closed, listener failure).
func (s *Server) Done() <-chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.done
}

// Err returns the error the transport stopped with, if any.
func (s *Server) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Stop shuts the transport down and waits for it to exit.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.mcpServer == nil {
		s.mu.Unlock()
		return fmt.Errorf("MCP server not started")
	}

	logging.Info("Server", "Stopping MCP server")

	cancelFunc := s.cancelFunc
	sseServer := s.sseServer
	httpServer := s.httpServer
	s.mu.Unlock()

	if cancelFunc != nil {
		cancelFunc()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var shutdownErr error
	switch {
	case sseServer != nil:
		// Closes open SSE sessions before shutting down the HTTP server.
		shutdownErr = sseServer.Shutdown(shutdownCtx)
	case httpServer != nil:
		shutdownErr = httpServer.Shutdown(shutdownCtx)
	}
	if shutdownErr != nil {
		logging.Error("Server", shutdownErr, "Error shutting down HTTP server")
	}

	// Stdio stops on context cancellation, no explicit shutdown needed.
	s.wg.Wait()

	s.mu.Lock()
	s.mcpServer = nil
	s.sseServer = nil
	s.httpServer = nil
	s.listener = nil
	s.cancelFunc = nil
	s.mu.Unlock()

	return shutdownErr
}

// Addr returns the bound address of an HTTP transport, or "" for stdio or
// before Start.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// GetEndpoint returns the URL MCP clients connect to, or "stdio".
func (s *Server) GetEndpoint() string {
	host := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	if addr := s.Addr(); addr != "" {
		host = addr
	}

	switch s.config.Transport {
	case config.MCPTransportSSE:
		return fmt.Sprintf("http://%s%s", host, sseEndpoint)
	case config.MCPTransportStreamableHTTP:
		return fmt.Sprintf("http://%s%s", host, streamingEndpoint)
	default:
		return "stdio"
	}
}
