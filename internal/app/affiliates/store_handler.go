package affiliates

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"instrumatch-affiliate/internal/catalog"
	"instrumatch-affiliate/internal/clicks"
	"instrumatch-affiliate/internal/pkg/render"
	"instrumatch-affiliate/internal/resolver"
	"instrumatch-affiliate/internal/router"
)

// StoreRedirectHandler sends a visitor to one named store's product page.
// The optional ?u= query carries the caller's own raw URL; it overrides
// the collected link for that store and is the fallback of last resort.
// When nothing resolves and no fallback exists, the response is 204 and
// the UI does nothing.
type StoreRedirectHandler struct {
	store  *catalog.Store
	res    *resolver.Resolver
	clicks *clicks.Publisher
	logger *zap.SugaredLogger
}

type NewStoreRedirectHandlerParams struct {
	fx.In

	Store  *catalog.Store
	Res    *resolver.Resolver
	Clicks *clicks.Publisher
	Logger *zap.SugaredLogger
}

func NewStoreRedirectHandler(p NewStoreRedirectHandlerParams) *StoreRedirectHandler {
	return &StoreRedirectHandler{
		store:  p.Store,
		res:    p.Res,
		clicks: p.Clicks,
		logger: p.Logger,
	}
}

func (h *StoreRedirectHandler) RegisterRoute(r *chi.Mux) {
	r.Get("/v1/products/{id}/affiliate/stores/{store}", h.Handle)
}

func (h *StoreRedirectHandler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, "id")), 10, 64)
	if err != nil {
		render.ChiErr(w, http.StatusBadRequest, "invalid product id")
		return
	}

	storeSlug := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "store")))
	if storeSlug == "" {
		render.ChiErr(w, http.StatusBadRequest, "missing store")
		return
	}

	originalURL := strings.TrimSpace(r.URL.Query().Get("u"))

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

	url := h.res.ResolveForStore(r.Context(), product, storeSlug, originalURL)
	if url == "" {
		if originalURL != "" {
			redirectNoReferrer(w, r, originalURL)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.clicks.Publish(r.Context(), product.ID, storeSlug, url)
	redirectNoReferrer(w, r, url)
}

var _ router.Handler = (*StoreRedirectHandler)(nil)
