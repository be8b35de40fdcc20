package webserver

import (
	"image"
	"net/http"

	"github.com/zettelwerk/ticket-gateway/internal/shared/logger"
	"go.uber.org/zap"
)

const maxUploadBytes = 10 << 20

// handlePrintImage serves POST /api/print/image: a multipart image upload
// that bypasses text rendering entirely. The image is scaled to the print
// width and 1-bit encoded.
func handlePrintImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !checkAPIKey(r) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	src, format, err := image.Decode(file)
	if err != nil {
		logger.Warn("Uploaded file is not a decodable image",
			zap.String("filename", header.Filename),
			zap.Error(err))
		http.Error(w, "file is not a decodable image", http.StatusBadRequest)
		return
	}

	img := deps.Renderer.PrepareImage(src)
	ticketID, err := deps.Publisher.Send(img, true, 0, 0)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{
			"ok":    false,
			"error": err.Error(),
		})
		return
	}

	logger.Info("Image ticket published",
		zap.String("ticket_id", ticketID),
		zap.String("filename", header.Filename),
		zap.String("format", format),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":        true,
		"ticket_id": ticketID,
	})
}
