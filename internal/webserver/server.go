package webserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/zettelwerk/ticket-gateway/internal/env"
	"github.com/zettelwerk/ticket-gateway/internal/fontstore"
	"github.com/zettelwerk/ticket-gateway/internal/publisher"
	"github.com/zettelwerk/ticket-gateway/internal/shared/logger"
	"github.com/zettelwerk/ticket-gateway/internal/ticket"
	"go.uber.org/zap"
)

// Deps are the collaborators the HTTP layer drives. They are constructed by
// the bootstrap and injected here; handlers never build their own transport.
type Deps struct {
	Renderer  *ticket.Renderer
	Publisher *publisher.Publisher
	Fonts     *fontstore.Store
}

var (
	httpServer *http.Server
	deps       Deps
)

// corsMiddleware adds CORS headers to HTTP handlers
func corsMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		handler(w, r)
	}
}

// NewMux builds the route table. Exposed separately so tests can drive the
// handlers through httptest without binding a port.
func NewMux(d Deps) *http.ServeMux {
	deps = d

	mux := http.NewServeMux()
	mux.HandleFunc("/", corsMiddleware(handleHealth))
	mux.HandleFunc("/print", corsMiddleware(handlePrintTemplate))
	mux.HandleFunc("/webhook/print", corsMiddleware(handleWebhookPrint))
	mux.HandleFunc("/api/print/template", corsMiddleware(handlePrintTemplate))
	mux.HandleFunc("/api/print/raw", corsMiddleware(handlePrintRaw))
	mux.HandleFunc("/api/print/image", corsMiddleware(handlePrintImage))
	mux.HandleFunc("/api/diagnostics", corsMiddleware(handleDiagnostics))

	mux.HandleFunc("/ui", handleUI)
	mux.HandleFunc("/ui/logout", handleUILogout)
	mux.HandleFunc("/ui/print/template", handleUIPrintTemplate)
	mux.HandleFunc("/ui/print/raw", handleUIPrintRaw)
	mux.HandleFunc("/ui/print/image", handleUIPrintImage)

	return mux
}

func StartWebServer(port int, d Deps) error {
	httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: NewMux(d),
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Web server error", zap.Error(err))
		}
	}()

	logger.Info("Web server started", zap.Int("port", port))
	return nil
}

func Shutdown() {
	if httpServer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown web server gracefully", zap.Error(err))
	} else {
		logger.Info("Web server shutdown complete")
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":    true,
		"topic": deps.Publisher.Topic(),
		"qos":   deps.Publisher.QoS(),
	})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

// nowString formats the current time in the configured timezone, as it is
// printed on tickets.
func nowString() string {
	return time.Now().In(env.Value.Location).Format("02.01.2006 15:04")
}
