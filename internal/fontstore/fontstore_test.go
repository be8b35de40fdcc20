package fontstore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileFallsBack(t *testing.T) {
	s := Load("does/not/exist-bold.ttf", 32, "does/not/exist.ttf", 28)

	if s.Resolve(RoleTitle) == nil || s.Resolve(RoleBody) == nil {
		t.Fatal("Resolve() returned nil face")
	}
	if !s.FallbackUsed(RoleTitle) || !s.FallbackUsed(RoleBody) {
		t.Fatal("missing font files must be recorded as fallbacks")
	}

	for _, res := range s.Resolutions() {
		if !res.FallbackUsed {
			t.Fatalf("resolution %+v missing fallback flag", res)
		}
		if res.Reason == "" {
			t.Fatalf("resolution %+v missing reason", res)
		}
	}
}

func TestLoadCorruptFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.ttf")
	if err := os.WriteFile(path, []byte("this is not a font"), 0644); err != nil {
		t.Fatal(err)
	}

	s := Load(path, 32, path, 28)
	if s.Resolve(RoleBody) == nil {
		t.Fatal("Resolve() returned nil face for corrupt file")
	}
	if !s.FallbackUsed(RoleBody) {
		t.Fatal("corrupt font file must be recorded as fallback")
	}
}

func TestFacesAreUsable(t *testing.T) {
	s := Load("", 32, "", 28)

	face := s.Resolve(RoleBody)
	if face.Metrics().Ascent <= 0 {
		t.Fatal("fallback face has no ascent")
	}
	if adv, ok := face.GlyphAdvance('M'); !ok || adv <= 0 {
		t.Fatalf("fallback face reports no advance for 'M' (ok=%v adv=%v)", ok, adv)
	}
}

func TestUnknownRoleGetsBodyFont(t *testing.T) {
	s := Load("", 32, "", 28)

	unknown := s.Resolve(Role("banner")).Metrics()
	body := s.Resolve(RoleBody).Metrics()
	title := s.Resolve(RoleTitle).Metrics()

	if unknown != body {
		t.Fatalf("unknown role metrics = %+v, want body metrics %+v", unknown, body)
	}
	if unknown == title {
		t.Fatal("unknown role resolved to the title font")
	}
}

func TestResolveMintsFreshFaces(t *testing.T) {
	s := Load("", 32, "", 28)

	// Faces hold per-use glyph state, so two callers must never get the
	// same one.
	if s.Resolve(RoleBody) == s.Resolve(RoleBody) {
		t.Fatal("Resolve() returned the same face twice")
	}
	if s.Resolve(RoleTitle) == s.Resolve(RoleTitle) {
		t.Fatal("Resolve() returned the same title face twice")
	}
}
