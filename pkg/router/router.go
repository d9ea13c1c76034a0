package router

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/shelfmark/backend/config"
	"github.com/shelfmark/backend/pkg/authenticator"
	"github.com/shelfmark/backend/pkg/logger"
	"github.com/shelfmark/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// HandlerFunc is a typed endpoint handler. The router binds the request
// object from the query string (GET) or the JSON body (POST) and writes
// the response object back inside the standard envelope.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before (or after) the handler. It may derive a new
// context; returning an error stops the chain and writes that error.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc always runs at the end of a request, after the response has
// been written.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux *http.ServeMux

	cfg          config.Configs
	db           *gorm.DB
	logger       logger.Logger
	tokenEngine  authenticator.TokenEngine
	sessionStore sessions.Store

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	return &Router{
		mux:          http.NewServeMux(),
		cfg:          cfg,
		db:           db,
		logger:       logger,
		tokenEngine:  authenticator.NewTokenEngine(cfg.Auth.TokenSecret),
		sessionStore: sessions.NewCookieStore([]byte(cfg.Session.Secret)),
	}
}

// Branch returns a router sharing the same mux but with its own copy of
// the middleware chains, so route groups can extend them independently.
func (r *Router) Branch() *Router {
	branch := *r
	branch.befores = append([]MiddlewareFunc{}, r.befores...)
	branch.afters = append([]MiddlewareFunc{}, r.afters...)
	branch.closers = append([]CloserFunc{}, r.closers...)
	return &branch
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodPost, handler))
}

func (r *Router) newRequestContext(req *http.Request, w http.ResponseWriter) context.Context {
	ctx := req.Context()
	ctx = xcontext.WithDB(ctx, r.db)
	ctx = xcontext.WithConfigs(ctx, r.cfg)
	ctx = xcontext.WithLogger(ctx, r.logger)
	ctx = xcontext.WithTokenEngine(ctx, r.tokenEngine)
	ctx = xcontext.WithSessionStore(ctx, r.sessionStore)
	ctx = xcontext.WithHTTPRequest(ctx, req)
	ctx = xcontext.WithHTTPWriter(ctx, w)
	ctx = xcontext.WithRequestHolders(ctx)
	return ctx
}
