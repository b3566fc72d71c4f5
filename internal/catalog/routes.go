package catalog

import (
	"github.com/go-chi/chi/v5"
)

// SetupAdminRoutes mounts the gated CRUD endpoints.
func (h *Handler) SetupAdminRoutes(r chi.Router) {
	r.Get("/categories", h.ListCategoriesHandler)
	r.Post("/categories", h.CreateCategoryHandler)
	r.Put("/categories", h.UpdateCategoryHandler)
	r.Delete("/categories", h.DeleteCategoryHandler)

	r.Get("/products", h.ListProductsHandler)
	r.Post("/products", h.CreateProductHandler)
	r.Delete("/products", h.DeleteProductHandler)
	r.Post("/products/images", h.AttachImageHandler)
	r.Delete("/products/images", h.DetachImageHandler)
	r.Get("/products/{id}", h.GetProductHandler)
	r.Put("/products/{id}", h.UpdateProductHandler)
}

// SetupPublicRoutes mounts the read-only storefront endpoints.
func (h *Handler) SetupPublicRoutes(r chi.Router) {
	r.Get("/categories", h.PublicListCategoriesHandler)
	r.Get("/products", h.PublicListProductsHandler)
	r.Get("/products/{slug}", h.PublicGetProductHandler)
	r.Get("/products/{slug}/inquiry", h.InquiryHandler)
}
