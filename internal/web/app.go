package web

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ktv/internal/catalog"
	"github.com/desertthunder/ktv/internal/matcher"
	"github.com/desertthunder/ktv/internal/models"
	"github.com/desertthunder/ktv/internal/player"
	"github.com/desertthunder/ktv/internal/queue"
	"github.com/desertthunder/ktv/internal/server"
	"github.com/desertthunder/ktv/internal/session"
	"github.com/desertthunder/ktv/internal/shared"
	"golang.org/x/time/rate"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Options contains the dependencies of an [App].
type Options struct {
	Scanner    *catalog.Scanner
	Matcher    *matcher.Matcher
	Sessions   *session.Store
	CookieName string
	Limiter    *rate.Limiter // applied to page renders, which rescan the catalog when searching
	Logger     *log.Logger
}

// App serves the karaoke web interface.
type App struct {
	scanner    *catalog.Scanner
	matcher    *matcher.Matcher
	sessions   *session.Store
	cookieName string
	limiter    *rate.Limiter
	logger     *log.Logger
	tpl        *template.Template
}

// New creates an [App], parsing the embedded templates.
func New(opts Options) (*App, error) {
	if opts.Scanner == nil || opts.Sessions == nil {
		return nil, fmt.Errorf("%w: scanner and session store are required", shared.ErrInvalidInput)
	}
	if opts.Matcher == nil {
		opts.Matcher = matcher.New(nil, matcher.DefaultLimit, matcher.DefaultCutoff)
	}
	if opts.CookieName == "" {
		opts.CookieName = "ktv_session"
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	tpl, err := template.New("index.html").Funcs(template.FuncMap{
		"mediaURL": mediaURL,
		"inc":      func(i int) int { return i + 1 },
	}).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &App{
		scanner:    opts.Scanner,
		matcher:    opts.Matcher,
		sessions:   opts.Sessions,
		cookieName: opts.CookieName,
		limiter:    opts.Limiter,
		logger:     shared.WithLogger(opts.Logger, "component", "web"),
		tpl:        tpl,
	}, nil
}

// Router builds a [server.BasicRouter] carrying the application's routes.
func (a *App) Router() *server.BasicRouter {
	r := server.NewBasicRouter()
	a.Mount(r)
	return r
}

// Mount registers the routes on r with logging, recovery and session middleware.
//
// Middleware is added to r as routes are registered, so r should be otherwise empty.
func (a *App) Mount(r server.Router) {
	r.Handle(http.MethodGet, "/health", HealthHandler())

	r.Use(server.Recoverer(a.logger), server.RequestLogger(a.logger))
	r.Handler(mediaHandler{app: a})

	r.Use(a.withSession)
	index := http.Handler(http.HandlerFunc(a.index))
	if a.limiter != nil {
		index = server.RateLimit(a.limiter)(index)
	}
	r.Handle(http.MethodGet, "/", index)
	r.Handle(http.MethodPost, "/queue", http.HandlerFunc(a.reserve))
	r.Handle(http.MethodPost, "/queue/next", http.HandlerFunc(a.next))
	r.Handle(http.MethodPost, "/queue/remove", http.HandlerFunc(a.remove))
	r.Handle(http.MethodPost, "/session/end", http.HandlerFunc(a.endSession))
	r.Handle(http.MethodGet, "/state", http.HandlerFunc(a.state))
}

// entryView is one row of the results or queue panels.
type entryView struct {
	Token    string `json:"token,omitempty"`
	Filename string `json:"filename"`
	Title    string `json:"title"`
	Score    int    `json:"score,omitempty"`
}

type pageData struct {
	Query    string
	Searched bool
	Results  []entryView
	Current  *entryView
	Queue    []entryView
}

type stateView struct {
	SessionID string      `json:"session_id"`
	Current   *entryView  `json:"current"`
	Queue     []entryView `json:"queue"`
}

func queueView(snap queue.Snapshot) (*entryView, []entryView) {
	var cur *entryView
	if snap.Current != nil {
		cur = &entryView{Token: snap.Current.Token, Filename: snap.Current.Filename, Title: snap.Current.Title()}
	}
	rows := make([]entryView, len(snap.Queue))
	for i, e := range snap.Queue {
		rows[i] = entryView{Token: e.Token, Filename: e.Filename, Title: e.Title()}
	}
	return cur, rows
}

func (a *App) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	sess := sessionFrom(r.Context())
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	var snap queue.Snapshot
	sess.Do(func(q *queue.PlaybackQueue) {
		if r.Method == http.MethodGet && q.Fill() {
			cur, _ := q.Current()
			a.logger.Info("now playing", "session", sess.ID, "file", cur.Filename)
		}
		snap = q.Snapshot()
	})

	data := pageData{Query: query, Searched: query != ""}
	data.Current, data.Queue = queueView(snap)

	if data.Searched {
		cat, err := a.scanner.Scan(r.Context())
		if err != nil {
			a.logger.Error("catalog scan failed", "error", err)
			http.Error(w, "Media catalog unavailable", http.StatusInternalServerError)
			return
		}
		results := a.matcher.Match(query, cat.Candidates())
		a.logger.Debug("matched songs", "query", query, "matches", matcher.Strings(results))
		for _, res := range results {
			data.Results = append(data.Results, entryView{
				Filename: res.Candidate,
				Title:    models.DisplayTitle(res.Candidate),
				Score:    res.Score,
			})
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.tpl.ExecuteTemplate(w, "index.html", data); err != nil {
		a.logger.Error("render failed", "error", err)
	}
}

func (a *App) reserve(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	filename := r.PostFormValue("filename")

	cat, err := a.scanner.Scan(r.Context())
	if err != nil {
		a.logger.Error("catalog scan failed", "error", err)
		http.Error(w, "Media catalog unavailable", http.StatusInternalServerError)
		return
	}
	if _, ok := cat.Lookup(filename); !ok {
		a.logger.Warn("reservation rejected", "file", filename, "error", shared.ErrNotInCatalog)
		http.Error(w, "Unknown song", http.StatusBadRequest)
		return
	}

	a.logger.Info("adding song to queue", "session", sess.ID, "file", filename)
	sess.Do(func(q *queue.PlaybackQueue) {
		q.Enqueue(filename)
		q.Fill()
		a.logger.Debug("queue", "session", sess.ID, "entries", q.Entries())
	})
	redirectHome(w, r)
}

func (a *App) next(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	sess.Do(func(q *queue.PlaybackQueue) {
		if q.Next() {
			cur, _ := q.Current()
			a.logger.Info("now playing", "session", sess.ID, "file", cur.Filename)
		} else {
			a.logger.Info("queue finished", "session", sess.ID)
		}
	})
	redirectHome(w, r)
}

func (a *App) remove(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	token := r.PostFormValue("token")
	index := r.PostFormValue("index")

	sess.Do(func(q *queue.PlaybackQueue) {
		switch {
		case token != "":
			if !q.Remove(token) {
				a.logger.Debug("ignored stale reservation token", "session", sess.ID, "token", token)
			}
		case index != "":
			i, err := strconv.Atoi(index)
			if err == nil {
				err = q.RemoveAt(i)
			}
			if err != nil {
				a.logger.Debug("ignored queue removal", "session", sess.ID, "index", index, "error", err)
			}
		}
	})
	redirectHome(w, r)
}

func (a *App) endSession(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	a.sessions.End(sess.ID)
	http.SetCookie(w, &http.Cookie{Name: a.cookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) state(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	view := stateView{SessionID: sess.ID}
	view.Current, view.Queue = queueView(sess.Snapshot())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(view); err != nil {
		a.logger.Error("encode state failed", "error", err)
	}
}

// mediaHandler streams catalog files under /media/.
type mediaHandler struct {
	app *App
}

func (mediaHandler) Routes() []string { return []string{"/media/"} }

func (h mediaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.app.media(w, r)
}

func (a *App) media(w http.ResponseWriter, r *http.Request) {
	filename := strings.TrimPrefix(r.URL.Path, "/media/")
	path, err := a.scanner.Path(filename)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	cat, err := a.scanner.Scan(r.Context())
	if err != nil {
		a.logger.Error("catalog scan failed", "error", err)
		http.Error(w, "Media catalog unavailable", http.StatusInternalServerError)
		return
	}
	if _, ok := cat.Lookup(filename); !ok {
		http.NotFound(w, r)
		return
	}

	if err := player.Stream(w, r, path); err != nil {
		if errors.Is(err, shared.ErrInvalidInput) {
			http.NotFound(w, r)
			return
		}
		a.logger.Error("stream failed", "file", filename, "error", err)
		http.Error(w, "Unable to read media", http.StatusInternalServerError)
	}
}

// redirectHome sends the browser back to the page, keeping the search query from the form.
func redirectHome(w http.ResponseWriter, r *http.Request) {
	target := "/"
	if q := strings.TrimSpace(r.PostFormValue("q")); q != "" {
		target += "?q=" + url.QueryEscape(q)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func mediaURL(filename string) string {
	return "/media/" + url.PathEscape(filename)
}
