// Package publisher builds the wire envelope for a rendered ticket and hands
// it to the transport. One call, one outbound message; failures are reported
// to the caller, never retried or buffered here.
package publisher

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/zettelwerk/ticket-gateway/internal/shared/logger"
	"github.com/zettelwerk/ticket-gateway/internal/transport"
	"go.uber.org/zap"
)

// Envelope is the message consumed by the printer bridge. The field names
// and types are a hardware contract; do not change them.
type Envelope struct {
	TicketID      string `json:"ticket_id"`
	DataType      string `json:"data_type"`
	DataBase64    string `json:"data_base64"`
	PaperType     int    `json:"paper_type"`
	PaperWidthMM  int    `json:"paper_width_mm"`
	PaperHeightMM int    `json:"paper_height_mm"`
	CutPaper      int    `json:"cut_paper"`
}

// Publisher encodes ticket bitmaps and publishes them to the print topic.
type Publisher struct {
	transport transport.Publisher
	topic     string
	qos       byte

	// Publishes on a shared connection are serialized; rendering is not.
	mu sync.Mutex
}

func New(t transport.Publisher, topic string, qos byte) *Publisher {
	return &Publisher{transport: t, topic: topic, qos: qos}
}

// NewTicketID builds a ticket identifier from a millisecond timestamp and a
// short random suffix. Good enough for dedup and logging on the bridge side;
// not a cryptographic uniqueness guarantee.
func NewTicketID() (string, error) {
	suffix, err := gonanoid.New(8)
	if err != nil {
		return "", fmt.Errorf("failed to generate id suffix: %w", err)
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), suffix), nil
}

// Send encodes img as PNG, wraps it in the wire envelope and publishes it.
// paperWidthMM/paperHeightMM of 0 mean "use hardware default". The returned
// ticket id identifies the publish attempt.
func (p *Publisher) Send(img image.Image, cutPaper bool, paperWidthMM, paperHeightMM int) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode ticket image: %w", err)
	}

	ticketID, err := NewTicketID()
	if err != nil {
		return "", err
	}

	cut := 0
	if cutPaper {
		cut = 1
	}

	envelope := Envelope{
		TicketID:      ticketID,
		DataType:      "png",
		DataBase64:    base64.StdEncoding.EncodeToString(buf.Bytes()),
		PaperType:     0,
		PaperWidthMM:  paperWidthMM,
		PaperHeightMM: paperHeightMM,
		CutPaper:      cut,
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return "", fmt.Errorf("failed to marshal envelope: %w", err)
	}

	p.mu.Lock()
	err = p.transport.Publish(p.topic, p.qos, payload)
	p.mu.Unlock()
	if err != nil {
		logger.Error("Failed to publish ticket",
			zap.String("ticket_id", ticketID),
			zap.String("topic", p.topic),
			zap.Error(err))
		return ticketID, fmt.Errorf("failed to publish ticket %s: %w", ticketID, err)
	}

	logger.Info("Ticket published",
		zap.String("ticket_id", ticketID),
		zap.String("topic", p.topic),
		zap.Uint8("qos", p.qos),
		zap.Int("payload_bytes", len(payload)))
	return ticketID, nil
}

// Topic returns the configured print topic.
func (p *Publisher) Topic() string {
	return p.topic
}

// QoS returns the configured delivery-assurance level.
func (p *Publisher) QoS() byte {
	return p.qos
}
