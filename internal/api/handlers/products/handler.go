package products

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"salonik/internal/api/handlers"
	"salonik/internal/api/middleware"
	catalogService "salonik/internal/service/catalog"
	"salonik/internal/service/catalog/models"
)

const (
	msgInvalidProductID   = "некорректный ID товара"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgProductNotFound    = "товар не найден"
	msgAccessDenied       = "операция доступна только администратору"
)

// Handler обрабатывает запросы каталога товаров
type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/products
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req models.CreateProductRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /products - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.CreateProduct(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /products", err)
		return
	}

	h.logger.Info("POST /products - Product created: product_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleList GET /api/v1/products
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("includeInactive") != "true"

	result, err := h.service.GetProducts(r.Context(), activeOnly)
	if err != nil {
		h.respondServiceError(w, "GET /products", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/products/{productId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(r)["productId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /products/{id} - Invalid product ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	result, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		h.respondServiceError(w, "GET /products/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PUT /api/v1/products/{productId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	productID, err := strconv.ParseInt(mux.Vars(r)["productId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /products/{id} - Invalid product ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	var req models.UpdateProductRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /products/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.UpdateProduct(r.Context(), productID, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /products/{id}", err)
		return
	}

	h.logger.Info("PUT /products/{id} - Product updated: product_id=%d, user_id=%d", productID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/products/{productId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	productID, err := strconv.ParseInt(mux.Vars(r)["productId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /products/{id} - Invalid product ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	if err := h.service.DeleteProduct(r.Context(), productID, userID); err != nil {
		h.respondServiceError(w, "DELETE /products/{id}", err)
		return
	}

	h.logger.Info("DELETE /products/{id} - Product deleted: product_id=%d, user_id=%d", productID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// respondServiceError мапит ошибки каталога на HTTP статусы
func (h *Handler) respondServiceError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, catalogService.ErrProductNotFound):
		h.logger.Warn("%s - Product not found", route)
		handlers.RespondNotFound(w, msgProductNotFound)

	case errors.Is(err, catalogService.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgAccessDenied)

	case errors.Is(err, catalogService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
