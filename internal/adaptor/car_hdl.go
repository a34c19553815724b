package adaptor

import (
	"net/http"

	"carwash-booking/internal/dto/request"
	"carwash-booking/internal/usecase"
	"carwash-booking/pkg/utils"

	"go.uber.org/zap"
)

type CarHandler struct {
	service usecase.FleetService
	log     *zap.Logger
}

func NewCarHandler(service usecase.FleetService, log *zap.Logger) *CarHandler {
	return &CarHandler{
		service: service,
		log:     log.With(zap.String("handler", "car")),
	}
}

// ListCars handles GET /api/cars
func (h *CarHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	cars, err := h.service.ListCars(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "list cars")
		return
	}

	utils.ResponseSuccess(w, "success", cars)
}

// AddCar handles POST /api/cars
func (h *CarHandler) AddCar(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CarRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body", nil)
		return
	}

	car, err := h.service.AddCar(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add car")
		return
	}

	utils.ResponseCreated(w, "Car added", car)
}

// UpdateCar handles PUT /api/cars/{id}
func (h *CarHandler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	carID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.CarRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body", nil)
		return
	}

	car, err := h.service.UpdateCar(r.Context(), userID, carID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update car")
		return
	}

	utils.ResponseSuccess(w, "Car updated", car)
}

// DeleteCar handles DELETE /api/cars/{id}
func (h *CarHandler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	carID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteCar(r.Context(), userID, carID); err != nil {
		handleServiceError(w, h.log, err, "delete car")
		return
	}

	utils.ResponseNoContent(w)
}
