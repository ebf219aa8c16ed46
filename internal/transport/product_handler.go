package transport

import (
	"errors"
	"net/http"
	"strconv"

	"inventory-api/internal/domain"
	"inventory-api/internal/middleware"
	"inventory-api/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	msgProductNotFound = "Product not found"
	msgMissingFields   = "Missing required fields"
	msgInvalidBody     = "Invalid request body"
	msgInvalidID       = "Invalid product id"
	msgCreated         = "Product created successfully"
	msgUpdated         = "Product updated successfully"
	msgDeleted         = "Product deleted successfully"

	msgRouteNotFound    = "Not found"
	msgMethodNotAllowed = "Method not allowed"
)

// CreateProductRequest represents the product creation payload
type CreateProductRequest struct {
	Name        string           `json:"name" validate:"required"`
	Category    string           `json:"category" validate:"required"`
	Quantity    *int             `json:"quantity" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Description *string          `json:"description"`
}

// UpdateProductRequest represents the product update payload. Every field is
// written as sent, absent fields become NULL.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Category    *string          `json:"category"`
	Quantity    *int             `json:"quantity"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
}

// CreateProductResponse is returned after a successful insert
type CreateProductResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	repo   repository.ProductRepository
	logger *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(repo repository.ProductRepository, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		repo:   repo,
		logger: logger,
	}
}

// RegisterRoutes registers all product routes. Anything under /api that
// matches no route is answered with a JSON error.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			middleware.RespondWithError(w, http.StatusNotFound, msgRouteNotFound)
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			middleware.RespondWithError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Post("/", h.CreateProduct)
			r.Get("/{id}", h.GetProduct)
			r.Put("/{id}", h.UpdateProduct)
			r.Delete("/{id}", h.DeleteProduct)
		})
		r.Get("/stats", h.GetStats)
	})
}

// ListProducts returns every product, newest first
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.List(r.Context())
	if err != nil {
		h.respondWithDatabaseError(w, "Failed to list products", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// GetProduct returns a single product
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	product, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, msgProductNotFound)
			return
		}
		h.respondWithDatabaseError(w, "Failed to get product", err, zap.Int64("product_id", id))
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// CreateProduct inserts a product after checking required fields are present
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest

	if err := middleware.DecodeAndValidate(w, r, &req); err != nil {
		if middleware.IsValidationError(err) {
			h.logger.Debug("Product creation missing fields", zap.Strings("fields", middleware.MissingFields(err)))
			middleware.RespondWithError(w, http.StatusBadRequest, msgMissingFields)
			return
		}

		h.logger.Debug("Product creation body rejected", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	id, err := h.repo.Create(r.Context(), domain.ProductInput{
		Name:        &req.Name,
		Category:    &req.Category,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		h.respondWithDatabaseError(w, "Failed to create product", err)
		return
	}

	h.logger.Info("Product created", zap.Int64("product_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, CreateProductResponse{
		ID:      id,
		Message: msgCreated,
	})
}

// UpdateProduct overwrites a product and refreshes its updated_at
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := middleware.DecodeJSON(w, r, &req); err != nil {
		h.logger.Debug("Product update body rejected", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	err := h.repo.Update(r.Context(), id, domain.ProductInput{
		Name:        req.Name,
		Category:    req.Category,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, msgProductNotFound)
			return
		}
		h.respondWithDatabaseError(w, "Failed to update product", err, zap.Int64("product_id", id))
		return
	}

	h.logger.Info("Product updated", zap.Int64("product_id", id))
	middleware.RespondWithMessage(w, msgUpdated)
}

// DeleteProduct removes a product
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, msgProductNotFound)
			return
		}
		h.respondWithDatabaseError(w, "Failed to delete product", err, zap.Int64("product_id", id))
		return
	}

	h.logger.Info("Product deleted", zap.Int64("product_id", id))
	middleware.RespondWithMessage(w, msgDeleted)
}

// GetStats returns inventory-wide aggregates
func (h *ProductHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.Stats(r.Context())
	if err != nil {
		h.respondWithDatabaseError(w, "Failed to compute stats", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, stats)
}

func (h *ProductHandler) productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, msgInvalidID)
		return 0, false
	}
	return id, true
}

func (h *ProductHandler) respondWithDatabaseError(w http.ResponseWriter, msg string, err error, fields ...zap.Field) {
	h.logger.Error(msg, append(fields, zap.Error(err))...)
	middleware.RespondWithError(w, http.StatusInternalServerError, databaseErrorMessage(err))
}

// databaseErrorMessage returns the message of the underlying failure: the
// server-reported text for Postgres errors, the innermost error otherwise.
func databaseErrorMessage(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Message
	}

	for {
		inner := errors.Unwrap(err)
		if inner == nil {
			return err.Error()
		}
		err = inner
	}
}
