package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"storefront-web/internal/models"
	"storefront-web/internal/render"
	"storefront-web/internal/util"
	"storefront-web/internal/validate"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminProducts renders the product management table.
func (h *Handler) AdminProducts(c *gin.Context) {
	st := h.loadState(c)
	query := c.Query("q")

	page := render.AdminProductsPage{
		Chrome: st.Chrome(),
		Query:  query,
		Notice: c.Query("notice"),
	}

	result, err := h.catalog.AdminList(c.Request.Context(), st.Token, query, queryPage(c))
	if err != nil {
		if h.expireSession(c, err) {
			return
		}
		h.logger.Error("Admin product list failed", zap.Error(err))
		page.Error = networkErrorBanner
		page.Page, page.PageCount = 1, 1
	} else {
		page.Products = h.productViews(result.Products, result.CategoryNames)
		page.Page = result.Page
		page.PageCount = result.PageCount
		page.Total = result.Total
		page.Pager = render.BuildPager(result.Page, result.PageCount)
	}

	util.PagesRenderedTotal.WithLabelValues("admin_products").Inc()
	c.HTML(http.StatusOK, "admin_products", page)
}

// NewProductForm renders the empty create form.
func (h *Handler) NewProductForm(c *gin.Context) {
	st := h.loadState(c)
	page := h.productFormPage(c, st, "Agregar producto", "/admin/productos/nuevo", nil)
	c.HTML(http.StatusOK, "admin_product_form", page)
}

// CreateProduct validates the submission and creates the product
// upstream. Failures re-render the form with the submitted values.
func (h *Handler) CreateProduct(c *gin.Context) {
	st := h.loadState(c)
	values := productFormValues(c)

	payload, errs := validate.ProductForm(values)
	if len(errs) > 0 {
		page := h.productFormPage(c, st, "Agregar producto", "/admin/productos/nuevo", values)
		page.Errors = errs
		c.HTML(http.StatusOK, "admin_product_form", page)
		return
	}

	if err := h.catalog.Create(c.Request.Context(), st.Token, payload); err != nil {
		if h.expireSession(c, err) {
			return
		}
		h.logger.Error("Product create failed", zap.Error(err))
		page := h.productFormPage(c, st, "Agregar producto", "/admin/productos/nuevo", values)
		page.Error = networkErrorBanner
		c.HTML(http.StatusOK, "admin_product_form", page)
		return
	}
	c.Redirect(http.StatusFound, "/admin?notice=Producto creado")
}

// EditProductForm renders the edit form prefilled from the stored
// product, including its image management section.
func (h *Handler) EditProductForm(c *gin.Context) {
	st := h.loadState(c)

	id, ok := paramInt64(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	product, imgs, _, err := h.catalog.Detail(c.Request.Context(), st.Token, id)
	if err != nil {
		if h.expireSession(c, err) {
			return
		}
		if errors.Is(err, models.ErrNotFound) {
			c.Redirect(http.StatusFound, "/admin?notice=Producto no encontrado")
			return
		}
		h.logger.Error("Product load for edit failed", zap.Int64("product_id", id), zap.Error(err))
		c.Redirect(http.StatusFound, "/admin?notice="+networkErrorBanner)
		return
	}

	page := h.productFormPage(c, st, "Editar producto", editAction(id), productToValues(product))
	page.IsEdit = true
	page.ProductID = id
	page.Images = imgs
	page.Notice = c.Query("notice")
	c.HTML(http.StatusOK, "admin_product_form", page)
}

// UpdateProduct validates and submits the edited fields.
func (h *Handler) UpdateProduct(c *gin.Context) {
	st := h.loadState(c)

	id, ok := paramInt64(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	values := productFormValues(c)

	renderForm := func(page render.ProductFormPage) {
		page.IsEdit = true
		page.ProductID = id
		if imgs, err := h.catalog.ProductImages(c.Request.Context(), st.Token, id); err == nil {
			page.Images = imgs
		}
		c.HTML(http.StatusOK, "admin_product_form", page)
	}

	payload, errs := validate.ProductForm(values)
	if len(errs) > 0 {
		page := h.productFormPage(c, st, "Editar producto", editAction(id), values)
		page.Errors = errs
		renderForm(page)
		return
	}

	if err := h.catalog.Update(c.Request.Context(), st.Token, id, payload); err != nil {
		if h.expireSession(c, err) {
			return
		}
		h.logger.Error("Product update failed", zap.Int64("product_id", id), zap.Error(err))
		page := h.productFormPage(c, st, "Editar producto", editAction(id), values)
		page.Error = networkErrorBanner
		renderForm(page)
		return
	}
	c.Redirect(http.StatusFound, "/admin?notice=Producto actualizado")
}

// DeleteProduct removes a product and returns to the table.
func (h *Handler) DeleteProduct(c *gin.Context) {
	st := h.loadState(c)

	id, ok := paramInt64(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	if err := h.catalog.Delete(c.Request.Context(), st.Token, id); err != nil {
		if h.expireSession(c, err) {
			return
		}
		h.logger.Error("Product delete failed", zap.Int64("product_id", id), zap.Error(err))
		c.Redirect(http.StatusFound, "/admin?notice="+networkErrorBanner)
		return
	}
	c.Redirect(http.StatusFound, "/admin?notice=Producto eliminado")
}

// AddProductImages attaches one submitted image URL to the product.
func (h *Handler) AddProductImages(c *gin.Context) {
	st := h.loadState(c)

	id, ok := paramInt64(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	url := strings.TrimSpace(c.PostForm("url_imagen"))
	if url == "" {
		c.Redirect(http.StatusFound, editAction(id)+"?notice=Ingresa una URL de imagen")
		return
	}

	if err := h.catalog.AddImages(c.Request.Context(), st.Token, id, []string{url}); err != nil {
		if h.expireSession(c, err) {
			return
		}
		h.logger.Error("Image add failed", zap.Int64("product_id", id), zap.Error(err))
		c.Redirect(http.StatusFound, editAction(id)+"?notice="+networkErrorBanner)
		return
	}
	c.Redirect(http.StatusFound, editAction(id)+"?notice=Imagen agregada")
}

// DeleteProductImage removes one image from the product.
func (h *Handler) DeleteProductImage(c *gin.Context) {
	st := h.loadState(c)

	id, ok := paramInt64(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	imageID, ok := paramInt64(c, "imgid")
	if !ok {
		c.Redirect(http.StatusFound, editAction(id))
		return
	}

	if err := h.catalog.DeleteImage(c.Request.Context(), st.Token, id, imageID); err != nil {
		if h.expireSession(c, err) {
			return
		}
		h.logger.Error("Image delete failed",
			zap.Int64("product_id", id),
			zap.Int64("image_id", imageID),
			zap.Error(err))
		c.Redirect(http.StatusFound, editAction(id)+"?notice="+networkErrorBanner)
		return
	}
	c.Redirect(http.StatusFound, editAction(id)+"?notice=Imagen eliminada")
}

func editAction(id int64) string {
	return "/admin/productos/" + strconv.FormatInt(id, 10)
}

func productFormValues(c *gin.Context) map[string]string {
	return map[string]string{
		"sku":            c.PostForm("sku"),
		"title":          c.PostForm("title"),
		"description":    c.PostForm("description"),
		"price":          c.PostForm("price"),
		"stock_quantity": c.PostForm("stock_quantity"),
		"category_id":    c.PostForm("category_id"),
	}
}

func productToValues(p models.Product) map[string]string {
	values := map[string]string{
		"sku":            p.SKU,
		"title":          p.Name,
		"description":    p.Description,
		"stock_quantity": strconv.Itoa(p.StockQuantity),
		"category_id":    strconv.FormatInt(p.CategoryID, 10),
	}
	if p.Price > 0 {
		values["price"] = strconv.FormatFloat(p.Price, 'f', -1, 64)
	}
	return values
}

// productFormPage builds the common parts of the create/edit form. A
// failed category fetch leaves the select empty but keeps the form
// usable for retry.
func (h *Handler) productFormPage(c *gin.Context, st state, title, action string, values map[string]string) render.ProductFormPage {
	if values == nil {
		values = map[string]string{}
	}
	categories, err := h.catalog.Categories(c.Request.Context(), st.Token)
	if err != nil {
		h.logger.Warn("Category fetch for form failed", zap.Error(err))
	}
	return render.ProductFormPage{
		Chrome:     st.Chrome(),
		Title:      title,
		Action:     action,
		Values:     values,
		Errors:     map[string]string{},
		Categories: categories,
	}
}
