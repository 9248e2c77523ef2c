package web

import (
	"net/http"
	"strings"

	"storefront-web/internal/models"
	"storefront-web/internal/render"
	"storefront-web/internal/service"
	"storefront-web/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CustomizeForm renders the store customization screen with the skin
// gallery and a live preview built from the first storefront page.
func (h *Handler) CustomizeForm(c *gin.Context) {
	st := h.loadState(c)

	page := render.CustomizePage{
		Chrome:   st.Chrome(),
		Branding: st.Branding,
		Entries:  h.registry.Entries(),
		Selected: h.registry.Resolve(st.Branding.TemplateKey).Key,
		Notice:   c.Query("notice"),
	}

	// Preview is best effort; an unreachable catalog leaves it empty.
	result, err := h.catalog.Browse(c.Request.Context(), st.Token, service.BrowseQuery{Page: 1})
	if err != nil {
		if h.expireSession(c, err) {
			return
		}
		h.logger.Warn("Customize preview fetch failed", zap.Error(err))
	} else {
		preview := render.StorePage{Chrome: st.Chrome()}
		preview.Products = h.productViews(result.Products, result.CategoryNames)
		preview.WithPagination(result.Page, result.PageCount, result.Total)
		page.Preview = preview
	}

	util.PagesRenderedTotal.WithLabelValues("customize").Inc()
	c.HTML(http.StatusOK, "admin_customize", page)
}

// SaveCustomize persists the submitted branding. Blank fields fall back
// to defaults; an unknown template key resolves to the default skin.
func (h *Handler) SaveCustomize(c *gin.Context) {
	st := h.loadState(c)
	ctx := c.Request.Context()

	branding := models.StoreBranding{
		StoreName:   strings.TrimSpace(c.PostForm("storeName")),
		Logo:        strings.TrimSpace(c.PostForm("logoPreview")),
		HeaderColor: strings.TrimSpace(c.PostForm("headerColor")),
		TemplateKey: c.PostForm("selectedTemplateKey"),
	}
	if branding.StoreName == "" {
		branding.StoreName = models.DefaultStoreName
	}
	if branding.HeaderColor == "" {
		branding.HeaderColor = models.DefaultHeaderColor
	}
	if !h.registry.Known(branding.TemplateKey) {
		branding.TemplateKey = models.DefaultTemplateKey
	}

	if err := h.sessions.SaveBranding(ctx, st.SID, branding); err != nil {
		h.logger.Error("Failed to save branding", zap.Error(err))
		page := render.CustomizePage{
			Chrome:   st.Chrome(),
			Branding: branding,
			Entries:  h.registry.Entries(),
			Selected: branding.TemplateKey,
			Error:    "No se pudieron guardar los cambios. Intenta nuevamente.",
		}
		c.HTML(http.StatusOK, "admin_customize", page)
		return
	}

	h.events.BrandingUpdated(ctx, branding)
	c.Redirect(http.StatusFound, "/admin/personalizar?notice=Cambios guardados")
}
