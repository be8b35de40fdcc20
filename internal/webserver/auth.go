package webserver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/zettelwerk/ticket-gateway/internal/env"
)

const cookieName = "ui_token"

// checkAPIKey accepts the key from the X-API-Key header or the "key" query
// parameter.
func checkAPIKey(r *http.Request) bool {
	key := r.Header.Get("X-API-Key")
	if key == "" {
		key = r.URL.Query().Get("key")
	}
	return key != "" && hmac.Equal([]byte(key), []byte(env.Value.APIKey))
}

// signToken builds a UI session token: unix issued-at timestamp plus a
// truncated HMAC-SHA256 over it, keyed with the API key. The structured
// two-field format keeps verification unambiguous.
func signToken(issuedAt string) string {
	mac := hmac.New(sha256.New, []byte(env.Value.APIKey))
	mac.Write([]byte(issuedAt))
	sig := hex.EncodeToString(mac.Sum(nil))[:32]
	return fmt.Sprintf("%s.%s", issuedAt, sig)
}

// verifyToken checks the signature and that the token has not outlived the
// configured remember window.
func verifyToken(token string) bool {
	issuedAt, _, ok := strings.Cut(token, ".")
	if !ok {
		return false
	}
	if !hmac.Equal([]byte(signToken(issuedAt)), []byte(token)) {
		return false
	}

	ts, err := strconv.ParseInt(issuedAt, 10, 64)
	if err != nil {
		return false
	}
	age := time.Since(time.Unix(ts, 0))
	return age >= 0 && age < time.Duration(env.Value.UIRememberDays)*24*time.Hour
}

// issueCookie sets a fresh UI session cookie on the response.
func issueCookie(w http.ResponseWriter) {
	issuedAt := strconv.FormatInt(time.Now().Unix(), 10)
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    signToken(issuedAt),
		MaxAge:   env.Value.UIRememberDays * 24 * 3600,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})
}

func clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   cookieName,
		Value:  "",
		MaxAge: -1,
		Path:   "/",
	})
}

// uiAuthed reports whether the request already carries valid credentials
// (API key or session cookie).
func uiAuthed(r *http.Request) bool {
	if checkAPIKey(r) {
		return true
	}
	cookie, err := r.Cookie(cookieName)
	return err == nil && verifyToken(cookie.Value)
}

// uiAuthState resolves form-based auth: returns whether the request is
// authorized and whether a remember-me cookie should be issued.
func uiAuthState(r *http.Request, pass string, remember bool) (authed bool, setCookie bool) {
	if uiAuthed(r) {
		return true, false
	}
	if pass != "" && pass == env.Value.UIPass {
		return true, remember
	}
	return false, false
}
