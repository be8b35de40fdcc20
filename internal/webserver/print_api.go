package webserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/zettelwerk/ticket-gateway/internal/shared/logger"
	"go.uber.org/zap"
)

type printPayload struct {
	Title       string   `json:"title"`
	Lines       []string `json:"lines"`
	Cut         bool     `json:"cut"`
	AddDatetime bool     `json:"add_datetime"`
}

type rawPayload struct {
	Text        string `json:"text"`
	AddDatetime bool   `json:"add_datetime"`
}

// renderAndPublish runs the full pipeline for a text ticket: layout, render,
// envelope, publish. The returned id identifies the publish attempt.
func renderAndPublish(title string, lines []string, addDatetime bool, cutPaper bool) (string, error) {
	timestamp := ""
	if addDatetime {
		timestamp = nowString()
	}
	img := deps.Renderer.RenderTicket(title, lines, timestamp)
	return deps.Publisher.Send(img, cutPaper, 0, 0)
}

// handlePrintTemplate serves POST /print and POST /api/print/template.
func handlePrintTemplate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !checkAPIKey(r) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
		return
	}

	// Defaults match the hosted template form.
	p := printPayload{Title: "TASKS", Cut: true, AddDatetime: true}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	ticketID, err := renderAndPublish(p.Title, p.Lines, p.AddDatetime, p.Cut)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{
			"ok":    false,
			"error": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":        true,
		"ticket_id": ticketID,
	})
}

// handleWebhookPrint serves POST /webhook/print, a single-text convenience
// hook. The text comes from a JSON body or the "text" query parameter.
func handleWebhookPrint(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !checkAPIKey(r) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
		return
	}

	text := ""
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			text = body.Text
		}
	}
	if text == "" {
		text = r.URL.Query().Get("text")
	}
	if text == "" {
		http.Error(w, "text required", http.StatusBadRequest)
		return
	}

	ticketID, err := renderAndPublish("TASK", []string{text}, true, true)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{
			"ok":    false,
			"error": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":        true,
		"ticket_id": ticketID,
	})
}

// handlePrintRaw serves POST /api/print/raw: free text with no title block.
// An optional timestamp is appended as a trailing text line instead of the
// right-aligned header.
func handlePrintRaw(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !checkAPIKey(r) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
		return
	}

	var p rawPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	text := p.Text
	if p.AddDatetime {
		text += "\n" + nowString()
	}
	lines := strings.Split(text, "\n")

	ticketID, err := renderAndPublish("", lines, false, true)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{
			"ok":    false,
			"error": err.Error(),
		})
		return
	}

	logger.Debug("Raw ticket published",
		zap.String("ticket_id", ticketID),
		zap.Int("lines", len(lines)))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":        true,
		"ticket_id": ticketID,
	})
}
