package affiliates

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"instrumatch-affiliate/config"
	"instrumatch-affiliate/internal/catalog"
	"instrumatch-affiliate/internal/clicks"
	"instrumatch-affiliate/internal/pkg/render"
	"instrumatch-affiliate/internal/resolver"
	"instrumatch-affiliate/internal/router"
)

// TopRedirectHandler sends a visitor to the product's top-ranked store.
// It is the server-side half of the site's "View Price" button: the UI
// links here with target="_blank" rel="noopener noreferrer", and we answer
// with a 302 and no referrer. A product with no resolvable store URL
// redirects to its own detail page instead.
type TopRedirectHandler struct {
	cfg    *config.Config
	store  *catalog.Store
	res    *resolver.Resolver
	clicks *clicks.Publisher
	logger *zap.SugaredLogger
}

type NewTopRedirectHandlerParams struct {
	fx.In

	Cfg    *config.Config
	Store  *catalog.Store
	Res    *resolver.Resolver
	Clicks *clicks.Publisher
	Logger *zap.SugaredLogger
}

func NewTopRedirectHandler(p NewTopRedirectHandlerParams) *TopRedirectHandler {
	return &TopRedirectHandler{
		cfg:    p.Cfg,
		store:  p.Store,
		res:    p.Res,
		clicks: p.Clicks,
		logger: p.Logger,
	}
}

func (h *TopRedirectHandler) RegisterRoute(r *chi.Mux) {
	r.Get("/v1/products/{id}/affiliate/top", h.Handle)
}

func (h *TopRedirectHandler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, "id")), 10, 64)
	if err != nil {
		render.ChiErr(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.store.GetProduct(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		render.ChiErr(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		h.logger.Errorw("product_load_failed", "product_id", id, "err", err)
		render.ChiErr(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	url, storeSlug := h.res.ResolveTop(r.Context(), product)
	if url == "" {
		redirectNoReferrer(w, r, h.cfg.Site.BaseURL+"/products/"+product.Slug)
		return
	}

	h.clicks.Publish(r.Context(), product.ID, storeSlug, url)
	redirectNoReferrer(w, r, url)
}

func redirectNoReferrer(w http.ResponseWriter, r *http.Request, url string) {
	w.Header().Set("Referrer-Policy", "no-referrer")
	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, url, http.StatusFound)
}

var _ router.Handler = (*TopRedirectHandler)(nil)
