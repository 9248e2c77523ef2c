package web

import (
	"errors"
	"net/http"

	"storefront-web/internal/models"
	"storefront-web/internal/render"
	"storefront-web/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Home renders the storefront with whichever skin the visitor selected.
// All skins receive the same page data.
func (h *Handler) Home(c *gin.Context) {
	st := h.loadState(c)
	q := browseQuery(c)

	page := render.StorePage{
		Chrome:           st.Chrome(),
		Query:            q.Query,
		SelectedCategory: q.CategoryID,
		SortOrder:        q.Sort,
	}

	result, err := h.catalog.Browse(c.Request.Context(), st.Token, q)
	if err != nil {
		if h.expireSession(c, err) {
			return
		}
		h.logger.Error("Storefront browse failed", zap.Error(err))
		page.Notice = networkErrorBanner
		page.WithPagination(1, 1, 0)
	} else {
		page.Products = h.productViews(result.Products, result.CategoryNames)
		page.Categories = result.Categories
		page.WithPagination(result.Page, result.PageCount, result.Total)
	}

	entry := h.registry.Resolve(st.Branding.TemplateKey)
	util.PagesRenderedTotal.WithLabelValues(entry.Key).Inc()
	c.HTML(http.StatusOK, entry.Template, page)
}

// Search renders the dedicated search page with query input, category
// chips and the result grid.
func (h *Handler) Search(c *gin.Context) {
	st := h.loadState(c)
	q := browseQuery(c)

	page := render.StorePage{
		Chrome:           st.Chrome(),
		Query:            q.Query,
		SelectedCategory: q.CategoryID,
		SortOrder:        q.Sort,
		Notice:           c.Query("notice"),
	}

	result, err := h.catalog.Browse(c.Request.Context(), st.Token, q)
	if err != nil {
		if h.expireSession(c, err) {
			return
		}
		h.logger.Error("Search browse failed", zap.Error(err))
		page.Notice = networkErrorBanner
		page.WithPagination(1, 1, 0)
	} else {
		page.Products = h.productViews(result.Products, result.CategoryNames)
		page.Categories = result.Categories
		page.WithPagination(result.Page, result.PageCount, result.Total)
	}

	util.PagesRenderedTotal.WithLabelValues("search").Inc()
	c.HTML(http.StatusOK, "search", page)
}

// ProductDetail renders one product with its gallery and a strip of
// products from the same category.
func (h *Handler) ProductDetail(c *gin.Context) {
	st := h.loadState(c)

	id, ok := paramInt64(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/buscar")
		return
	}

	product, imgs, related, err := h.catalog.Detail(c.Request.Context(), st.Token, id)
	if err != nil {
		if h.expireSession(c, err) {
			return
		}
		if errors.Is(err, models.ErrNotFound) {
			c.Redirect(http.StatusFound, "/buscar?notice=Producto no encontrado")
			return
		}
		h.logger.Error("Product detail fetch failed", zap.Int64("product_id", id), zap.Error(err))
		c.Redirect(http.StatusFound, "/buscar?notice="+networkErrorBanner)
		return
	}

	names := h.catalog.CategoryNames(c.Request.Context(), st.Token)
	urls := make([]string, 0, len(imgs))
	for _, img := range imgs {
		urls = append(urls, img.URLImagen)
	}

	page := render.DetailPage{
		Chrome:  st.Chrome(),
		Product: render.BuildProductView(product, firstOf(urls), names),
		Images:  urls,
		Related: h.productViews(related, names),
	}
	util.PagesRenderedTotal.WithLabelValues("detail").Inc()
	c.HTML(http.StatusOK, "product_detail", page)
}

func firstOf(urls []string) string {
	if len(urls) == 0 {
		return ""
	}
	return urls[0]
}
