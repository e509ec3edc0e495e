// Package web provides an HTTP server exposing the report engine as a JSON
// API.
//
// SECURITY WARNING: This server has no authentication and should only be
// bound to localhost (127.0.0.1). Do not expose it to untrusted networks.
package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mvdouden/ledgerreport/ledger"
	"github.com/mvdouden/ledgerreport/loader"
	"github.com/mvdouden/ledgerreport/telemetry"
)

type Server struct {
	Port         int
	Host         string
	Commodity    string
	WatchEnabled bool

	loader *loader.Loader
	config *ledger.Config

	// ledgerFile is the file path watched for changes.
	ledgerFile string

	mu sync.RWMutex
	l  *ledger.Ledger

	// SSE clients for broadcasting reload events
	sseClients map[chan string]struct{}
	sseMu      sync.Mutex
}

// New creates a server reporting on the given ledger file. The report
// commodity is the default for requests that do not name one.
func New(port int, ledgerFile string, ld *loader.Loader, cfg *ledger.Config, commodity string) *Server {
	return &Server{
		Port:       port,
		Host:       "127.0.0.1",
		Commodity:  commodity,
		loader:     ld,
		config:     cfg,
		ledgerFile: ledgerFile,
	}
}

func (s *Server) Start(ctx context.Context) error {
	collector := telemetry.FromContext(ctx)
	timer := collector.Start(fmt.Sprintf("web.start %s:%d", s.Host, s.Port))
	defer timer.End()

	if s.ledgerFile == "" {
		return fmt.Errorf("ledger file is required")
	}

	s.sseClients = make(map[chan string]struct{})

	loadTimer := timer.Child(fmt.Sprintf("web.load_ledger %s", filepath.Base(s.ledgerFile)))
	if err := s.reloadLedger(ctx); err != nil {
		loadTimer.End()
		return fmt.Errorf("failed to load ledger: %w", err)
	}
	loadTimer.End()

	if s.WatchEnabled {
		if err := s.startWatcher(ctx); err != nil {
			return fmt.Errorf("failed to start file watcher: %w", err)
		}
	}

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	return http.ListenAndServe(addr, s.setupRouter())
}

func (s *Server) setupRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/trial", s.handleTrial)
	mux.HandleFunc("GET /api/balance-sheet", s.handleBalanceSheet)
	mux.HandleFunc("GET /api/pandl", s.handlePandL)
	mux.HandleFunc("GET /api/cash", s.handleCash)
	mux.HandleFunc("GET /api/flows", s.handleFlows)
	mux.HandleFunc("GET /api/events", s.handleSSE)

	return mux
}

// reloadLedger loads or reloads the ledger from the external binary.
// Caller must NOT hold the mutex - this method acquires it internally.
func (s *Server) reloadLedger(ctx context.Context) error {
	l, err := s.loader.Load(ctx, time.Now(), s.config)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.l = l
	s.mu.Unlock()

	return nil
}

// startWatcher starts a file watcher for the ledger file. It reloads the
// ledger and broadcasts SSE events when the file changes.
func (s *Server) startWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Watch the containing directory; atomic saves replace the file itself
	// and a watch on the old inode would go stale.
	if err := watcher.Add(filepath.Dir(s.ledgerFile)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", s.ledgerFile, err)
	}

	go s.runWatcher(ctx, watcher)

	return nil
}

// runWatcher processes file system events with debouncing.
func (s *Server) runWatcher(ctx context.Context, watcher *fsnotify.Watcher) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		_ = watcher.Close()
	}()

	// Debounce timer - editors often write files in multiple steps
	const debounceDelay = 100 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != filepath.Clean(s.ledgerFile) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}

			debounceTimer = time.AfterFunc(debounceDelay, func() {
				s.handleFileChange(ctx)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// handleFileChange reloads the ledger and notifies SSE clients.
func (s *Server) handleFileChange(ctx context.Context) {
	if err := s.reloadLedger(ctx); err != nil {
		log.Printf("Failed to reload ledger: %v", err)
		return
	}
	s.broadcast("reload")
}

// handleSSE handles Server-Sent Events connections for real-time updates.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	clientChan := make(chan string, 10)

	s.sseMu.Lock()
	s.sseClients[clientChan] = struct{}{}
	s.sseMu.Unlock()

	defer func() {
		s.sseMu.Lock()
		delete(s.sseClients, clientChan)
		s.sseMu.Unlock()
		close(clientChan)
	}()

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	_, _ = fmt.Fprintf(w, "data: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-clientChan:
			_, _ = fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

// broadcast sends an event to all connected SSE clients.
func (s *Server) broadcast(event string) {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()

	for clientChan := range s.sseClients {
		select {
		case clientChan <- event:
		default:
			// Client buffer full, skip
		}
	}
}
