package fontstore

import (
	"fmt"
	"os"

	"github.com/zettelwerk/ticket-gateway/internal/shared/logger"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Role selects which configured font a text row is drawn with.
type Role string

const (
	RoleTitle Role = "title"
	RoleBody  Role = "body"
)

// Resolution records how a role's font was actually obtained, so diagnostics
// and tests can assert that a fallback occurred without log scraping.
type Resolution struct {
	Role         Role    `json:"role"`
	Path         string  `json:"path"`
	Size         float64 `json:"size"`
	FallbackUsed bool    `json:"fallback_used"`
	Reason       string  `json:"reason,omitempty"`
}

// Store holds the parsed fonts for all roles. Parsing happens once at
// startup; faces are minted per Resolve call, because opentype faces carry
// mutable rasterizer state and must not be shared between goroutines.
type Store struct {
	title       roleFont
	body        roleFont
	resolutions []Resolution
}

type roleFont struct {
	parsed *opentype.Font // nil falls back to the static last-resort face
	size   float64
}

func (f roleFont) face() font.Face {
	if f.parsed == nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f.parsed, &opentype.FaceOptions{
		Size:    f.size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		logger.Error("Failed to create font face", zap.Error(err))
		return basicfont.Face7x13
	}
	return face
}

// Load resolves the title and body fonts. It never fails: a missing or
// corrupt font file degrades to an embedded Go font at the requested size.
func Load(titlePath string, titleSize float64, bodyPath string, bodySize float64) *Store {
	title, titleRes := loadRoleFont(RoleTitle, titlePath, titleSize, gobold.TTF)
	body, bodyRes := loadRoleFont(RoleBody, bodyPath, bodySize, goregular.TTF)

	return &Store{
		title:       title,
		body:        body,
		resolutions: []Resolution{titleRes, bodyRes},
	}
}

// Resolve returns a face for a role. Every call mints a fresh face, so
// concurrent requests never share glyph-loading state. Unknown roles get the
// body font.
func (s *Store) Resolve(role Role) font.Face {
	if role == RoleTitle {
		return s.title.face()
	}
	return s.body.face()
}

// Resolutions reports how each role's font was obtained.
func (s *Store) Resolutions() []Resolution {
	out := make([]Resolution, len(s.resolutions))
	copy(out, s.resolutions)
	return out
}

// FallbackUsed reports whether the given role is running on a fallback font.
func (s *Store) FallbackUsed(role Role) bool {
	for _, r := range s.resolutions {
		if r.Role == role {
			return r.FallbackUsed
		}
	}
	return false
}

func loadRoleFont(role Role, path string, size float64, fallbackTTF []byte) (roleFont, Resolution) {
	res := Resolution{Role: role, Path: path, Size: size}

	data, err := os.ReadFile(path)
	if err == nil {
		parsed, perr := parseFont(data, size)
		if perr == nil {
			return roleFont{parsed: parsed, size: size}, res
		}
		err = perr
	}

	res.FallbackUsed = true
	res.Reason = err.Error()
	logger.Warn("Font unavailable, using embedded fallback",
		zap.String("role", string(role)),
		zap.String("path", path),
		zap.Error(err))

	parsed, perr := parseFont(fallbackTTF, size)
	if perr != nil {
		// Embedded fonts are known-good; this path exists only to keep the
		// pipeline alive no matter what.
		logger.Error("Embedded fallback font failed to parse", zap.Error(perr))
		return roleFont{size: size}, res
	}
	return roleFont{parsed: parsed, size: size}, res
}

// parseFont parses the font and proves a face can be minted at the requested
// size, so Resolve cannot fail later.
func parseFont(data []byte, size float64) (*opentype.Font, error) {
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	if _, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}); err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	return parsed, nil
}
