package webserver

import (
	"net/http"
	"os"

	"github.com/zettelwerk/ticket-gateway/internal/env"
	"github.com/zettelwerk/ticket-gateway/internal/status"
	"github.com/zettelwerk/ticket-gateway/internal/version"
)

type fontDiagnostic struct {
	Role         string  `json:"role"`
	Path         string  `json:"path"`
	Size         float64 `json:"size"`
	Exists       bool    `json:"exists"`
	FallbackUsed bool    `json:"fallback_used"`
	Reason       string  `json:"reason,omitempty"`
}

type diagnosticsResponse struct {
	Version            string           `json:"version"`
	Fonts              []fontDiagnostic `json:"fonts"`
	PrintWidthPx       int              `json:"print_width_px"`
	MarginX            int              `json:"margin_x"`
	MarginY            int              `json:"margin_y"`
	LinePitch          int              `json:"line_pitch"`
	MinCanvasHeight    int              `json:"min_canvas_height"`
	BottomPadding      int              `json:"bottom_padding"`
	Topic              string           `json:"topic"`
	QoS                int              `json:"qos"`
	Timezone           string           `json:"timezone"`
	TransportConnected bool             `json:"transport_connected"`
}

// handleDiagnostics reports the effective rendering and transport
// configuration. Read-only, no side effects.
func handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !checkAPIKey(r) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
		return
	}

	fonts := []fontDiagnostic{}
	for _, res := range deps.Fonts.Resolutions() {
		_, statErr := os.Stat(res.Path)
		fonts = append(fonts, fontDiagnostic{
			Role:         string(res.Role),
			Path:         res.Path,
			Size:         res.Size,
			Exists:       statErr == nil,
			FallbackUsed: res.FallbackUsed,
			Reason:       res.Reason,
		})
	}

	cfg := deps.Renderer.Config()
	writeJSON(w, http.StatusOK, diagnosticsResponse{
		Version:            version.String(),
		Fonts:              fonts,
		PrintWidthPx:       cfg.PrintWidthPx,
		MarginX:            cfg.MarginX,
		MarginY:            cfg.MarginY,
		LinePitch:          cfg.LinePitch,
		MinCanvasHeight:    cfg.MinHeight,
		BottomPadding:      cfg.BottomPadding,
		Topic:              deps.Publisher.Topic(),
		QoS:                int(deps.Publisher.QoS()),
		Timezone:           env.Value.Timezone,
		TransportConnected: status.IsTransportConnected(),
	})
}
