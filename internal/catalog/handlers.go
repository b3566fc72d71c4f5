package catalog

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/JantaElectricals/JE-Backend/internal/httputil"
)

// Handler carries the catalog dependencies. DB is the read-write handle;
// ReadDB, when non-nil, is a lower-privilege handle used by the public
// read-only endpoints.
type Handler struct {
	DB             *gorm.DB
	ReadDB         *gorm.DB
	Log            *slog.Logger
	WhatsAppNumber string
}

func (h *Handler) read() *gorm.DB {
	if h.ReadDB != nil {
		return h.ReadDB
	}
	return h.DB
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// validateName enforces the shared naming contract: at least 2 characters
// after trimming, and a non-empty slug after normalization. Returns the
// trimmed name and derived slug.
func validateName(name string) (trimmed, slug string, ok bool) {
	trimmed = strings.TrimSpace(name)
	if len(trimmed) < 2 {
		return "", "", false
	}
	slug = Slugify(trimmed)
	if slug == "" {
		return "", "", false
	}
	return trimmed, slug, true
}

// --- Categories ---

// ListCategoriesHandler returns every category, oldest first. Products are
// listed newest first; the asymmetry is intentional and mirrored by the
// storefront UI.
func (h *Handler) ListCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	var categories []Category
	if err := h.DB.Order("created_at ASC").Find(&categories).Error; err != nil {
		h.Log.Error("category list failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (h *Handler) CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	name, slug, ok := validateName(req.Name)
	if !ok {
		httputil.Error(w, http.StatusBadRequest, "Category name is required")
		return
	}

	category := Category{
		ID:   uuid.New().String(),
		Name: name,
		Slug: slug,
	}
	if err := h.DB.Create(&category).Error; err != nil {
		if isUniqueViolation(err) {
			httputil.Error(w, http.StatusConflict, "Category already exists")
			return
		}
		h.Log.Error("category insert failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"category": category})
}

func (h *Handler) UpdateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		httputil.Error(w, http.StatusBadRequest, "Valid id and category name are required")
		return
	}

	name, slug, ok := validateName(req.Name)
	if !ok {
		httputil.Error(w, http.StatusBadRequest, "Valid id and category name are required")
		return
	}

	var category Category
	if err := h.DB.First(&category, "id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httputil.Error(w, http.StatusNotFound, "Category not found")
			return
		}
		h.Log.Error("category lookup failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Failed to update category")
		return
	}

	// Renaming re-derives the slug, so the category's public URL changes.
	updates := map[string]any{"name": name, "slug": slug}
	if err := h.DB.Model(&category).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			httputil.Error(w, http.StatusConflict, "Category already exists")
			return
		}
		h.Log.Error("category update failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Failed to update category")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DeleteCategoryHandler removes a category by id. A delete that matches no row
// still reports success, and referencing products are left in place; both are
// deliberate carry-overs of the store's behavior.
func (h *Handler) DeleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httputil.Error(w, http.StatusBadRequest, "Category id is required")
		return
	}

	if err := h.DB.Delete(&Category{}, "id = ?", id).Error; err != nil {
		h.Log.Error("category delete failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// --- Products ---

type productPayload struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	CategoryID  string   `json:"categoryId"`
}

// validateProduct checks the shared create/update contract and returns the
// trimmed name and slug. Price must be present and non-negative; the category
// must resolve at write time (later category deletes may still orphan it).
func (h *Handler) validateProduct(w http.ResponseWriter, req productPayload) (name, slug string, ok bool) {
	if req.Price == nil || req.CategoryID == "" {
		httputil.Error(w, http.StatusBadRequest, "Missing required fields")
		return "", "", false
	}
	if *req.Price < 0 {
		httputil.Error(w, http.StatusBadRequest, "Price must be non-negative")
		return "", "", false
	}

	name, slug, valid := validateName(req.Name)
	if !valid {
		httputil.Error(w, http.StatusBadRequest, "Product name is required")
		return "", "", false
	}

	var category Category
	if err := h.DB.Select("id").First(&category, "id = ?", req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httputil.Error(w, http.StatusBadRequest, "Invalid category")
			return "", "", false
		}
		h.Log.Error("category lookup failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Failed to save product")
		return "", "", false
	}

	return name, slug, true
}

type adminProductRow struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	CategoryName string  `json:"categoryName"`
	ImageURL     *string `json:"imageUrl"`
}

// ListProductsHandler returns every product, newest first, each with its
// category name and first image only.
func (h *Handler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	var products []Product
	if err := h.DB.Order("created_at DESC").Find(&products).Error; err != nil {
		h.Log.Error("product list failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	firstImages, err := h.firstImages(h.DB, products)
	if err != nil {
		h.Log.Error("product image batch failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	categoryNames, err := h.categoryNames(h.DB, products)
	if err != nil {
		h.Log.Error("category name batch failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	rows := make([]adminProductRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, adminProductRow{
			ID:           p.ID,
			Name:         p.Name,
			Slug:         p.Slug,
			Description:  p.Description,
			Price:        p.Price,
			CategoryName: categoryNames[p.CategoryID],
			ImageURL:     firstImages[p.ID],
		})
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"products": rows})
}

// firstImages resolves the first (oldest) image per product in one round trip.
func (h *Handler) firstImages(d *gorm.DB, products []Product) (map[string]*string, error) {
	result := make(map[string]*string, len(products))
	if len(products) == 0 {
		return result, nil
	}

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	var rows []struct {
		ProductID string
		ImageURL  string
	}
	err := d.Raw(`
		SELECT DISTINCT ON (product_id) product_id, image_url
		FROM catalog.product_images
		WHERE product_id = ANY(?)
		ORDER BY product_id, created_at ASC
	`, pq.Array(ids)).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		result[rows[i].ProductID] = &rows[i].ImageURL
	}
	return result, nil
}

// categoryNames resolves category display names in one round trip. Products
// whose category was deleted surface an empty name.
func (h *Handler) categoryNames(d *gorm.DB, products []Product) (map[string]string, error) {
	result := make(map[string]string, len(products))
	if len(products) == 0 {
		return result, nil
	}

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.CategoryID)
	}

	var rows []struct {
		ID   string
		Name string
	}
	err := d.Raw(`SELECT id, name FROM catalog.categories WHERE id = ANY(?)`, pq.Array(ids)).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.ID] = row.Name
	}
	return result, nil
}

// GetProductHandler returns a single product with all its images.
func (h *Handler) GetProductHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var product Product
	err := h.DB.Preload("Images", func(d *gorm.DB) *gorm.DB {
		return d.Order("created_at ASC")
	}).First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httputil.Error(w, http.StatusNotFound, "Product not found")
			return
		}
		h.Log.Error("product lookup failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"product": product})
}

func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req productPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	name, slug, ok := h.validateProduct(w, req)
	if !ok {
		return
	}

	product := Product{
		ID:          uuid.New().String(),
		Name:        name,
		Slug:        slug,
		Description: req.Description,
		Price:       *req.Price,
		CategoryID:  req.CategoryID,
	}
	if err := h.DB.Create(&product).Error; err != nil {
		if isUniqueViolation(err) {
			httputil.Error(w, http.StatusConflict, "Product already exists")
			return
		}
		h.Log.Error("product insert failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"product": product})
}

func (h *Handler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req productPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	name, slug, ok := h.validateProduct(w, req)
	if !ok {
		return
	}

	var product Product
	if err := h.DB.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httputil.Error(w, http.StatusNotFound, "Product not found")
			return
		}
		h.Log.Error("product lookup failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Failed to update product")
		return
	}

	updates := map[string]any{
		"name":        name,
		"slug":        slug,
		"description": req.Description,
		"price":       *req.Price,
		"category_id": req.CategoryID,
	}
	if err := h.DB.Model(&product).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			httputil.Error(w, http.StatusConflict, "Product already exists")
			return
		}
		h.Log.Error("product update failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Failed to update product")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httputil.Error(w, http.StatusBadRequest, "Product id is required")
		return
	}

	// Image rows go with the product via the store's cascade.
	if err := h.DB.Delete(&Product{}, "id = ?", id).Error; err != nil {
		h.Log.Error("product delete failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// --- Product images ---

// AttachImageHandler records a product/image association. The binary itself is
// uploaded separately; a failed upload before this call simply leaves the
// product with fewer images, and nothing here compensates for that.
func (h *Handler) AttachImageHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"productId"`
		ImageURL  string `json:"imageUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" || req.ImageURL == "" {
		httputil.Error(w, http.StatusBadRequest, "Missing productId or imageUrl")
		return
	}

	image := ProductImage{
		ID:        uuid.New().String(),
		ProductID: req.ProductID,
		ImageURL:  req.ImageURL,
	}
	if err := h.DB.Create(&image).Error; err != nil {
		if isForeignKeyViolation(err) {
			httputil.Error(w, http.StatusBadRequest, "Invalid product")
			return
		}
		h.Log.Error("image insert failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Failed to save image")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DetachImageHandler removes one association by image id. It does not check
// which product owns the image; callers are trusted to pass ids they listed.
func (h *Handler) DetachImageHandler(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httputil.Error(w, http.StatusBadRequest, "Image id is required")
		return
	}

	if err := h.DB.Delete(&ProductImage{}, "id = ?", id).Error; err != nil {
		h.Log.Error("image delete failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Failed to delete image")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
