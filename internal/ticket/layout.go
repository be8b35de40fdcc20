package ticket

import (
	"strings"

	"github.com/zettelwerk/ticket-gateway/internal/fontstore"
	"golang.org/x/image/font"
)

// Role determines which font a line is drawn with.
type Role int

const (
	RoleTitle Role = iota
	RoleBody
)

// Line is one rendered text row. Text is already guaranteed to fit the
// configured width budget, except for a single unbreakable over-long token.
type Line struct {
	Role Role
	Text string
}

// Config carries the fixed layout geometry. It is derived once from the
// process configuration and never mutated.
type Config struct {
	PrintWidthPx  int
	MarginX       int
	MarginY       int
	LinePitch     int
	BottomPadding int
	MinHeight     int
}

// Renderer turns ticket text into a 1-bit bitmap sized for the print head.
// It holds no per-request state and every operation mints its own font
// faces, so one Renderer serves concurrent requests.
type Renderer struct {
	cfg   Config
	fonts *fontstore.Store
}

func New(cfg Config, fonts *fontstore.Store) *Renderer {
	return &Renderer{cfg: cfg, fonts: fonts}
}

func (r *Renderer) Config() Config {
	return r.cfg
}

func (r *Renderer) faceFor(role Role) font.Face {
	if role == RoleTitle {
		return r.fonts.Resolve(fontstore.RoleTitle)
	}
	return r.fonts.Resolve(fontstore.RoleBody)
}

// Layout wraps the title and body into line records and computes the canvas
// height. A non-empty timestamp reserves one line pitch at the top; the
// timestamp itself is drawn separately by Render and is not a line record.
func (r *Renderer) Layout(title string, bodyLines []string, timestamp string) ([]Line, int) {
	maxWidth := r.cfg.PrintWidthPx - 2*r.cfg.MarginX
	bodyFace := r.faceFor(RoleBody)

	var lines []Line
	if t := strings.TrimSpace(title); t != "" {
		for _, ln := range Wrap(t, r.faceFor(RoleTitle), maxWidth) {
			lines = append(lines, Line{Role: RoleTitle, Text: ln})
		}
	}
	for _, raw := range bodyLines {
		if strings.TrimSpace(raw) == "" {
			// Blank body lines survive as empty records to keep paragraph
			// spacing on the printout.
			lines = append(lines, Line{Role: RoleBody})
			continue
		}
		for _, ln := range Wrap(raw, bodyFace, maxWidth) {
			lines = append(lines, Line{Role: RoleBody, Text: ln})
		}
	}

	reserved := 0
	if timestamp != "" {
		reserved = r.cfg.LinePitch
	}
	height := r.cfg.MarginY + reserved + len(lines)*r.cfg.LinePitch + r.cfg.BottomPadding
	if height < r.cfg.MinHeight {
		height = r.cfg.MinHeight
	}
	return lines, height
}
