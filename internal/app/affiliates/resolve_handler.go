package affiliates

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"instrumatch-affiliate/internal/catalog"
	"instrumatch-affiliate/internal/pkg/render"
	"instrumatch-affiliate/internal/resolver"
	"instrumatch-affiliate/internal/router"
)

// ResolveHandler is the JSON resolution endpoint for server-side callers
// (the site's SSR layer resolves URLs ahead of render instead of going
// through a redirect).
type ResolveHandler struct {
	store    *catalog.Store
	res      *resolver.Resolver
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

type NewResolveHandlerParams struct {
	fx.In

	Store  *catalog.Store
	Res    *resolver.Resolver
	Logger *zap.SugaredLogger
}

func NewResolveHandler(p NewResolveHandlerParams) *ResolveHandler {
	return &ResolveHandler{
		store:    p.Store,
		res:      p.Res,
		validate: validator.New(),
		logger:   p.Logger,
	}
}

func (h *ResolveHandler) RegisterRoute(r *chi.Mux) {
	r.Post("/v1/affiliate/resolve", h.Handle)
}

type resolveRequest struct {
	ProductID   int64  `json:"productId" validate:"required,gt=0"`
	Store       string `json:"store" validate:"omitempty,min=1,max=64"`
	OriginalURL string `json:"originalUrl" validate:"omitempty,url"`
}

type resolveResponse struct {
	URL *string `json:"url"`
}

func (h *ResolveHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.ChiErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		render.ChiErr(w, http.StatusBadRequest, "invalid resolve request: "+err.Error())
		return
	}

	product, err := h.store.GetProduct(r.Context(), req.ProductID)
	if errors.Is(err, catalog.ErrNotFound) {
		render.ChiErr(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		h.logger.Errorw("product_load_failed", "product_id", req.ProductID, "err", err)
		render.ChiErr(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	var url string
	if strings.TrimSpace(req.Store) != "" {
		url = h.res.ResolveForStore(r.Context(), product, req.Store, req.OriginalURL)
	} else {
		url = h.res.ResolveTopURL(r.Context(), product)
	}

	resp := resolveResponse{}
	if url != "" {
		resp.URL = &url
	}
	render.ChiJSON(w, http.StatusOK, resp)
}

var _ router.Handler = (*ResolveHandler)(nil)
