package wire

import (
	"net/http"

	"carwash-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// The catalog is public.
func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler) {
	r.Get("/api/services", catalogHandler.ListServices)
	r.Get("/api/services/{id}", catalogHandler.GetService)
}

func wireFleet(
	r chi.Router,
	carHandler *adaptor.CarHandler,
	buildingHandler *adaptor.BuildingHandler,
	auth func(http.Handler) http.Handler,
) {
	r.Route("/api/cars", func(r chi.Router) {
		r.Use(auth)

		r.Get("/", carHandler.ListCars)
		r.Post("/", carHandler.AddCar)
		r.Put("/{id}", carHandler.UpdateCar)
		r.Delete("/{id}", carHandler.DeleteCar)
	})

	r.Route("/api/buildings", func(r chi.Router) {
		r.Use(auth)

		r.Get("/", buildingHandler.ListBuildings)
		r.Post("/", buildingHandler.AddBuilding)
		r.Post("/{id}/default", buildingHandler.SetDefault)
	})
}
