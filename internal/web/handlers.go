package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"storefront-web/config"
	"storefront-web/internal/broker"
	"storefront-web/internal/models"
	"storefront-web/internal/render"
	"storefront-web/internal/service"
	"storefront-web/internal/session"
	"storefront-web/internal/upstream"
	"storefront-web/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// networkErrorBanner is shown when the catalog API cannot be reached.
const networkErrorBanner = "No se pudo conectar con el servidor. Intenta nuevamente."

// Handler carries the dependencies shared by every page handler.
type Handler struct {
	cfg      *config.Config
	client   *upstream.Client
	catalog  *service.CatalogService
	sessions *session.Store
	registry *render.Registry
	events   *broker.ActivityPublisher
	logger   *zap.Logger
}

// NewHandler wires the web layer.
func NewHandler(cfg *config.Config, client *upstream.Client, catalog *service.CatalogService, sessions *session.Store, registry *render.Registry, events *broker.ActivityPublisher) *Handler {
	return &Handler{
		cfg:      cfg,
		client:   client,
		catalog:  catalog,
		sessions: sessions,
		registry: registry,
		events:   events,
		logger:   util.GetLogger(),
	}
}

// state is the per-request session snapshot every handler starts from.
type state struct {
	SID      string
	Token    string
	Branding models.StoreBranding
}

func (st state) LoggedIn() bool {
	return st.Token != ""
}

func (st state) Chrome() render.Chrome {
	return render.BuildChrome(st.Branding, st.LoggedIn())
}

// loadState reads the visitor's token and branding. Redis trouble
// degrades to defaults so the page still renders.
func (h *Handler) loadState(c *gin.Context) state {
	ctx := c.Request.Context()
	sid := sessionID(c)

	branding, err := h.sessions.Branding(ctx, sid)
	if err != nil {
		h.logger.Warn("Failed to load session branding", zap.Error(err))
	}
	token, err := h.sessions.Token(ctx, sid)
	if err != nil {
		h.logger.Warn("Failed to load session token", zap.Error(err))
	}
	return state{SID: sid, Token: token, Branding: branding}
}

// expireSession handles an upstream 401: the stored token is dropped
// (branding survives) and the visitor lands on the login screen. Returns
// true when the error was a session expiry.
func (h *Handler) expireSession(c *gin.Context, err error) bool {
	if !errors.Is(err, models.ErrSessionExpired) {
		return false
	}
	if clearErr := h.sessions.ClearToken(c.Request.Context(), sessionID(c)); clearErr != nil {
		h.logger.Warn("Failed to clear expired token", zap.Error(clearErr))
	}
	c.Redirect(http.StatusFound, "/login?expired=1")
	c.Abort()
	return true
}

// productViews resolves a product slice into renderable cards using
// whatever images the resolver has cached.
func (h *Handler) productViews(products []models.Product, names map[int64]string) []render.ProductView {
	views := make([]render.ProductView, 0, len(products))
	for _, p := range products {
		img, _ := h.catalog.PrimaryImage(p.ID)
		views = append(views, render.BuildProductView(p, img, names))
	}
	return views
}

func queryInt64(c *gin.Context, name string) int64 {
	v, _ := strconv.ParseInt(c.Query(name), 10, 64)
	return v
}

func queryPage(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func paramInt64(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// browseQuery assembles the listing parameters shared by the home page
// and the search page. The hidden pq field carries the previous query so
// a changed search snaps back to page one; pager links omit it.
func browseQuery(c *gin.Context) service.BrowseQuery {
	q := c.Query("q")
	prev := q
	if pq, ok := c.GetQuery("pq"); ok {
		prev = pq
	}
	return service.BrowseQuery{
		Query:      q,
		PrevQuery:  prev,
		CategoryID: queryInt64(c, "categoria"),
		Page:       queryPage(c),
		Sort:       c.Query("orden"),
	}
}

// Health reports process liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports whether the session store is reachable.
func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.sessions.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
