package catalog

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/lib/pq"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"gorm.io/gorm"

	"github.com/JantaElectricals/JE-Backend/internal/httputil"
)

// The public endpoints are read-only mirrors of the catalog, served from the
// lower-privilege handle when one is configured.

type categoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type publicProductRow struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	Price       float64      `json:"price"`
	Category    *categoryRef `json:"category"`
	ImageURL    *string      `json:"imageUrl"`
}

func (h *Handler) PublicListCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	var categories []Category
	if err := h.read().Order("created_at ASC").Find(&categories).Error; err != nil {
		h.Log.Error("public category list failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

// PublicListProductsHandler lists products newest first, optionally filtered
// by ?category=<slug>. A slug that resolves to nothing leaves the list
// unfiltered, matching the storefront's lenient filter behavior.
func (h *Handler) PublicListProductsHandler(w http.ResponseWriter, r *http.Request) {
	d := h.read()

	query := d.Order("created_at DESC")
	if slug := r.URL.Query().Get("category"); slug != "" {
		var category Category
		if err := d.Select("id").First(&category, "slug = ?", slug).Error; err == nil {
			query = query.Where("category_id = ?", category.ID)
		}
	}

	var products []Product
	if err := query.Find(&products).Error; err != nil {
		h.Log.Error("public product list failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	firstImages, err := h.firstImages(d, products)
	if err != nil {
		h.Log.Error("public image batch failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	refs, err := h.categoryRefs(d, products)
	if err != nil {
		h.Log.Error("public category batch failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	rows := make([]publicProductRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, publicProductRow{
			ID:          p.ID,
			Name:        p.Name,
			Slug:        p.Slug,
			Description: p.Description,
			Price:       p.Price,
			Category:    refs[p.CategoryID],
			ImageURL:    firstImages[p.ID],
		})
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"products": rows})
}

func (h *Handler) categoryRefs(d *gorm.DB, products []Product) (map[string]*categoryRef, error) {
	result := make(map[string]*categoryRef, len(products))
	if len(products) == 0 {
		return result, nil
	}

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.CategoryID)
	}

	var rows []categoryRef
	err := d.Raw(`SELECT id, name, slug FROM catalog.categories WHERE id = ANY(?)`, pq.Array(ids)).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		result[rows[i].ID] = &rows[i]
	}
	return result, nil
}

// PublicGetProductHandler returns one product by its slug with the category
// and every image, oldest image first.
func (h *Handler) PublicGetProductHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	d := h.read()

	product, ok := h.productBySlug(w, d, slug)
	if !ok {
		return
	}

	var category Category
	var ref *categoryRef
	if err := d.First(&category, "id = ?", product.CategoryID).Error; err == nil {
		ref = &categoryRef{ID: category.ID, Name: category.Name, Slug: category.Slug}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"product": map[string]any{
			"id":             product.ID,
			"name":           product.Name,
			"slug":           product.Slug,
			"description":    product.Description,
			"price":          product.Price,
			"category":       ref,
			"product_images": product.Images,
		},
	})
}

func (h *Handler) productBySlug(w http.ResponseWriter, d *gorm.DB, slug string) (*Product, bool) {
	var product Product
	err := d.Preload("Images", func(q *gorm.DB) *gorm.DB {
		return q.Order("created_at ASC")
	}).First(&product, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httputil.Error(w, http.StatusNotFound, "Product not found")
			return nil, false
		}
		h.Log.Error("public product lookup failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Failed to fetch product")
		return nil, false
	}
	return &product, true
}

var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders a price the way the storefront shows it, with Indian
// digit grouping.
func FormatINR(price float64) string {
	return inrPrinter.Sprintf("₹%v", number.Decimal(price))
}

// InquiryURL builds the WhatsApp deep link for a purchase inquiry.
func InquiryURL(phoneNumber, productName string, price float64) string {
	text := fmt.Sprintf("I would like to Buy %s (%s).", productName, FormatINR(price))
	return "https://wa.me/" + phoneNumber + "?text=" + url.QueryEscape(text)
}

// InquiryHandler returns the WhatsApp deep link the storefront opens when a
// visitor requests a quote for the product.
func (h *Handler) InquiryHandler(w http.ResponseWriter, r *http.Request) {
	if h.WhatsAppNumber == "" {
		httputil.Error(w, http.StatusInternalServerError, "Contact number not configured")
		return
	}

	slug := chi.URLParam(r, "slug")
	product, ok := h.productBySlug(w, h.read(), slug)
	if !ok {
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"url": InquiryURL(h.WhatsAppNumber, product.Name, product.Price),
	})
}
