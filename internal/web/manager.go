package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"sync"
	"syscall"
	"time"
)

const shutdownTimeout = 5 * time.Second

// Manager owns the lifecycle of at most one running web server.
type Manager struct {
	handler     http.Handler
	host        string
	openBrowser bool

	mu  sync.Mutex
	srv *http.Server
	url string
}

// NewManager creates a Manager serving handler on host. When openBrowser
// is set, each successful Start opens the URL in the default browser.
func NewManager(handler http.Handler, host string, openBrowser bool) *Manager {
	return &Manager{handler: handler, host: host, openBrowser: openBrowser}
}

// Start listens on port and serves in the background. It is idempotent:
// while a server is running it returns that server's URL and
// alreadyRunning=true. Port 0 picks a free port.
func (m *Manager) Start(port int) (url string, alreadyRunning bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.srv != nil {
		return m.url, true, nil
	}

	ln, err := net.Listen("tcp", net.JoinHostPort(m.host, strconv.Itoa(port)))
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return "", false, fmt.Errorf("port %d is already in use", port)
		}
		return "", false, fmt.Errorf("listening on port %d: %w", port, err)
	}

	srv := &http.Server{
		Handler:           m.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("WARNING: web server stopped: %v", err)
		}
	}()

	m.srv = srv
	m.url = "http://" + ln.Addr().String()
	log.Printf("web interface running at %s", m.url)

	if m.openBrowser {
		if err := openURL(m.url); err != nil {
			log.Printf("WARNING: could not open browser: %v", err)
		}
	}
	return m.url, false, nil
}

// Stop shuts the server down gracefully. It reports false if nothing
// was running.
func (m *Manager) Stop(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.srv == nil {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	err := m.srv.Shutdown(ctx)
	m.srv = nil
	m.url = ""
	if err != nil {
		return true, fmt.Errorf("shutting down web server: %w", err)
	}
	return true, nil
}

// URL returns the address of the running server, or "" when stopped.
func (m *Manager) URL() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.url
}
