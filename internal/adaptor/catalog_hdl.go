package adaptor

import (
	"net/http"
	"strconv"

	"carwash-booking/internal/dto/request"
	"carwash-booking/internal/usecase"
	"carwash-booking/pkg/utils"

	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// ListServices handles GET /api/services?category=&car_type=&min_price=&max_price=
func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var req request.ServiceListRequest
	if v := query.Get("category"); v != "" {
		req.Category = &v
	}
	if v := query.Get("car_type"); v != "" {
		req.CarType = &v
	}

	fields := map[string]string{}
	req.MinPrice = queryInt64(query.Get("min_price"), "min_price", fields)
	req.MaxPrice = queryInt64(query.Get("max_price"), "max_price", fields)
	if len(fields) > 0 {
		badRequest(w, "Invalid query parameters", fields)
		return
	}

	services, err := h.service.ListServices(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}

// GetService handles GET /api/services/{id}
func (h *CatalogHandler) GetService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	service, err := h.service.GetService(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get service")
		return
	}

	utils.ResponseSuccess(w, "success", service)
}

func queryInt64(value, name string, fields map[string]string) *int64 {
	if value == "" {
		return nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		fields[name] = name + " must be an integer"
		return nil
	}
	return &n
}
