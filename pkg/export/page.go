package export

// This file implements the HTML group page: the same filters and list as
// the terminal UI, rendered server-side with filters passed as query
// parameters.

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kraitsura/groups_viewer/pkg/filter"
	"github.com/kraitsura/groups_viewer/pkg/loader"
	"github.com/kraitsura/groups_viewer/pkg/logging"
	"github.com/kraitsura/groups_viewer/pkg/model"
)

//go:embed page.html.tmpl
var pageTemplateText string

var pageTemplate = template.Must(template.New("page").Parse(pageTemplateText))

// PageServer serves the group page for one loaded collection
type PageServer struct {
	source loader.Source
	addr   string
	logger *zap.Logger
	server *http.Server

	mu     sync.RWMutex
	state  model.LoadState
	groups []model.Group
}

// NewPageServer creates a page server that will load from source
func NewPageServer(source loader.Source, addr string, logger *zap.Logger) *PageServer {
	return &PageServer{
		source: source,
		addr:   addr,
		logger: logging.OrNop(logger),
		state:  model.LoadStateLoading,
	}
}

// Load runs the one load of this server's lifetime. Requests served
// before it settles see the loading page; later calls change nothing.
func (p *PageServer) Load(ctx context.Context) {
	groups, err := p.source.LoadGroups(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state.Settled() {
		p.logger.Warn("ignoring repeated group load")
		return
	}
	if err != nil {
		p.logger.Error("group load failed", zap.Error(err))
		p.state = model.LoadStateFailed
		return
	}
	p.logger.Info("groups loaded", zap.Int("count", len(groups)))
	p.groups = groups
	p.state = model.LoadStateReady
}

// State returns the current load state
func (p *PageServer) State() model.LoadState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Handler returns the HTTP routes: the page at / and a JSON status
func (p *PageServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", p.pageHandler)
	mux.HandleFunc("/__status__", p.statusHandler)
	return noCacheMiddleware(mux)
}

// pageOption is one <option> of a select
type pageOption struct {
	Value    string
	Label    string
	Selected bool
}

type pageGroup struct {
	model.Group
	ClosedLabel string
	FriendNames []string
}

type pageData struct {
	State          string
	PrivacyOptions []pageOption
	ColorOptions   []pageOption
	FriendsOnly    bool
	Groups         []pageGroup
}

// Page labels are in Russian
var privacyLabels = map[filter.Privacy]string{
	filter.PrivacyAll:    "Все",
	filter.PrivacyOpen:   "Открытые",
	filter.PrivacyClosed: "Закрытые",
}

// ParseQuery reads the filter criteria from query parameters. Unknown
// privacy values fall back to all; the page offers no other choices.
// The friends checkbox submits "on" when ticked.
func ParseQuery(r *http.Request) filter.State {
	q := r.URL.Query()
	var s filter.State
	if p, err := filter.ParsePrivacy(q.Get("privacy")); err == nil {
		s.SetPrivacy(p)
	}
	s.SetColor(q.Get("color"))
	s.SetFriendsOnly(q.Get("friends") == "on")
	return s
}

func (p *PageServer) pageHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	p.mu.RLock()
	state, groups := p.state, p.groups
	p.mu.RUnlock()

	data := pageData{State: state.String()}
	if state == model.LoadStateReady {
		s := ParseQuery(r)
		data = buildPageData(groups, s)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		p.logger.Error("render page", zap.Error(err))
	}
}

func buildPageData(groups []model.Group, s filter.State) pageData {
	data := pageData{
		State:       model.LoadStateReady.String(),
		FriendsOnly: s.FriendsOnly,
	}

	for _, priv := range []filter.Privacy{filter.PrivacyAll, filter.PrivacyOpen, filter.PrivacyClosed} {
		data.PrivacyOptions = append(data.PrivacyOptions, pageOption{
			Value:    priv.String(),
			Label:    privacyLabels[priv],
			Selected: priv == s.Privacy,
		})
	}

	data.ColorOptions = append(data.ColorOptions, pageOption{Value: "", Label: "Любой", Selected: s.Color == ""})
	for _, c := range filter.AvailableColors(groups) {
		data.ColorOptions = append(data.ColorOptions, pageOption{Value: c, Label: c, Selected: c == s.Color})
	}

	for _, g := range filter.Apply(groups, s) {
		pg := pageGroup{Group: g, ClosedLabel: "Открытая"}
		if g.Closed {
			pg.ClosedLabel = "Закрытая"
		}
		for _, f := range g.Friends {
			pg.FriendNames = append(pg.FriendNames, f.FullName())
		}
		data.Groups = append(data.Groups, pg)
	}
	return data
}

// statusHandler returns the load state and group count as JSON
func (p *PageServer) statusHandler(w http.ResponseWriter, r *http.Request) {
	p.mu.RLock()
	status := struct {
		State  string `json:"state"`
		Groups int    `json:"groups"`
		Addr   string `json:"addr"`
	}{p.state.String(), len(p.groups), p.addr}
	p.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		p.logger.Warn("write status", zap.Error(err))
	}
}

// noCacheMiddleware adds headers to prevent browser caching.
func noCacheMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// URL returns the address the page is served on
func (p *PageServer) URL() string {
	return "http://" + p.addr
}

// StartWithGracefulShutdown listens on the configured address, kicks off
// the load, and blocks until ctx is done, SIGINT/SIGTERM arrives, or the
// listener fails.
func (p *PageServer) StartWithGracefulShutdown(ctx context.Context) error {
	ln, err := net.Listen("tcp", p.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", p.addr, err)
	}
	p.addr = ln.Addr().String()

	p.server = &http.Server{
		Handler:           p.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go p.Load(ctx)

	// Channel to receive server errors
	errChan := make(chan error, 1)
	go func() {
		if err := p.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	p.logger.Info("page server running", zap.String("url", p.URL()))

	select {
	case <-ctx.Done():
		p.logger.Info("shutting down page server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return p.server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}
