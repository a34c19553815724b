package adaptor

import (
	"net/http"

	"carwash-booking/internal/dto/request"
	"carwash-booking/internal/usecase"
	"carwash-booking/pkg/utils"

	"go.uber.org/zap"
)

type BuildingHandler struct {
	service usecase.BuildingService
	log     *zap.Logger
}

func NewBuildingHandler(service usecase.BuildingService, log *zap.Logger) *BuildingHandler {
	return &BuildingHandler{
		service: service,
		log:     log.With(zap.String("handler", "building")),
	}
}

// ListBuildings handles GET /api/buildings
func (h *BuildingHandler) ListBuildings(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	buildings, err := h.service.ListBuildings(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "list buildings")
		return
	}

	utils.ResponseSuccess(w, "success", buildings)
}

// AddBuilding handles POST /api/buildings
func (h *BuildingHandler) AddBuilding(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.BuildingRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body", nil)
		return
	}

	building, err := h.service.AddBuilding(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add building")
		return
	}

	utils.ResponseCreated(w, "Building added", building)
}

// SetDefault handles POST /api/buildings/{id}/default
func (h *BuildingHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	buildingID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	building, err := h.service.SetDefault(r.Context(), userID, buildingID)
	if err != nil {
		handleServiceError(w, h.log, err, "set default building")
		return
	}

	utils.ResponseSuccess(w, "Default building updated", building)
}
