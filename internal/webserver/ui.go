package webserver

import (
	"fmt"
	"image"
	"net/http"
	"strings"

	"github.com/zettelwerk/ticket-gateway/internal/env"
	"github.com/zettelwerk/ticket-gateway/internal/shared/logger"
	"go.uber.org/zap"
)

const uiPage = `<!doctype html><meta charset="utf-8">
<title>Printer UI</title>
<style>
 body{font-family:system-ui;margin:2rem;max-width:820px}
 textarea,input[type=text],input[type=password]{width:100%%;padding:.6rem;margin:.3rem 0}
 button{padding:.6rem 1rem;cursor:pointer}
 .row{display:flex;gap:10px;align-items:center}
 .tabs{display:flex;gap:8px;margin:.5rem 0}
 .ok{background:#e6ffed;padding:.6rem;border-radius:.4rem;margin:.6rem 0}
 .err{background:#ffecec;padding:.6rem;border-radius:.4rem;margin:.6rem 0}
 .card{border:1px solid #eee;border-radius:10px;padding:12px;margin:12px 0}
 small{color:#666}
 header{display:flex;gap:12px;align-items:center;margin-bottom:8px}
 header a{margin-left:auto;color:#666;text-decoration:none}
</style>
<header>
  <h1>Quittungsdruck</h1>
  <a href="/ui/logout">Logout</a>
</header>

<div class="tabs">
  <button onclick="show('tpl')">Vorlage</button>
  <button onclick="show('raw')">Raw Text</button>
  <button onclick="show('img')">Bild</button>
</div>

<div id="msg">%s</div>

<div id="pane_tpl" class="card">
  <form method="post" action="/ui/print/template">
    <label>Titel</label>
    <input type="text" name="title" value="MORGEN" />
    <label>Zeilen (eine pro Zeile)</label>
    <textarea name="lines" placeholder="Lesen - 10 Min&#10;Kaffee machen"></textarea>
    <div class="row">
      <label><input type="checkbox" name="add_dt" checked> Datum/Zeit automatisch</label>
      <span style="flex:1 1 auto"></span>
      <label>UI Passwort</label>
      <input type="password" name="pass" placeholder="falls noetig" />
      <label class="row"><input type="checkbox" name="remember"> Angemeldet bleiben</label>
    </div>
    <button type="submit">Drucken</button>
  </form>
</div>

<div id="pane_raw" class="card" style="display:none">
  <form method="post" action="/ui/print/raw">
    <label>Freitext</label>
    <textarea name="text" placeholder="Kurzer Notizzettel ..."></textarea>
    <div class="row">
      <label><input type="checkbox" name="add_dt"> Datum/Zeit anhaengen</label>
      <span style="flex:1 1 auto"></span>
      <label>UI Passwort</label>
      <input type="password" name="pass" placeholder="falls noetig" />
      <label class="row"><input type="checkbox" name="remember"> Angemeldet bleiben</label>
    </div>
    <button type="submit">Drucken</button>
  </form>
</div>

<div id="pane_img" class="card" style="display:none">
  <form method="post" action="/ui/print/image" enctype="multipart/form-data">
    <label>Bilddatei (PNG/JPG)</label>
    <input type="file" name="file" accept=".png,.jpg,.jpeg" />
    <div class="row">
      <span style="flex:1 1 auto"></span>
      <label>UI Passwort</label>
      <input type="password" name="pass" placeholder="falls noetig" />
      <label class="row"><input type="checkbox" name="remember"> Angemeldet bleiben</label>
    </div>
    <small>Bild wird in s/w konvertiert und auf %dpx Breite skaliert.</small><br>
    <button type="submit">Drucken</button>
  </form>
</div>

<script>
 function show(which){
   for (const id of ['tpl','raw','img']) {
     document.getElementById('pane_'+id).style.display = (which===id)?'block':'none';
   }
 }
</script>
`

func writePage(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, uiPage, msg, env.Value.PrintWidthPx)
}

func handleUI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	msg := `<div class="err">Nicht angemeldet - Passwort einmal eingeben oder "angemeldet bleiben" waehlen.</div>`
	if uiAuthed(r) {
		msg = `<div class="ok">Angemeldet - Passwortfeld kann leer bleiben.</div>`
	}
	writePage(w, msg)
}

func handleUILogout(w http.ResponseWriter, r *http.Request) {
	clearCookie(w)
	http.Redirect(w, r, "/ui", http.StatusSeeOther)
}

// uiFormAuth parses the form and resolves auth in one step. Returns false
// after writing the error page when the password is wrong.
func uiFormAuth(w http.ResponseWriter, r *http.Request) (setCookie bool, ok bool) {
	authed, setCookie := uiAuthState(r, r.FormValue("pass"), r.FormValue("remember") != "")
	if !authed {
		writePage(w, `<div class="err">Falsches Passwort</div>`)
		return false, false
	}
	return setCookie, true
}

func uiFinish(w http.ResponseWriter, err error, setCookie bool) {
	if err != nil {
		logger.Error("UI print failed", zap.Error(err))
		writePage(w, `<div class="err">Senden fehlgeschlagen</div>`)
		return
	}
	if setCookie {
		issueCookie(w)
	}
	writePage(w, `<div class="ok">Gesendet</div>`)
}

func handleUIPrintTemplate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	setCookie, ok := uiFormAuth(w, r)
	if !ok {
		return
	}

	var lines []string
	for _, ln := range strings.Split(r.FormValue("lines"), "\n") {
		lines = append(lines, strings.TrimRight(ln, "\r"))
	}

	_, err := renderAndPublish(strings.TrimSpace(r.FormValue("title")), lines, r.FormValue("add_dt") != "", true)
	uiFinish(w, err, setCookie)
}

func handleUIPrintRaw(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	setCookie, ok := uiFormAuth(w, r)
	if !ok {
		return
	}

	text := r.FormValue("text")
	if r.FormValue("add_dt") != "" {
		text += "\n" + nowString()
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	_, err := renderAndPublish("", lines, false, true)
	uiFinish(w, err, setCookie)
}

func handleUIPrintImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	setCookie, ok := uiFormAuth(w, r)
	if !ok {
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writePage(w, `<div class="err">Keine Datei ausgewaehlt</div>`)
		return
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		writePage(w, `<div class="err">Datei ist kein lesbares Bild</div>`)
		return
	}

	_, err = deps.Publisher.Send(deps.Renderer.PrepareImage(src), true, 0, 0)
	uiFinish(w, err, setCookie)
}
