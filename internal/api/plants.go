package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/plantshop-core/internal/plant"
)

// handleListPlants returns every plant as a bare JSON array.
func (s *Server) handleListPlants(w http.ResponseWriter, r *http.Request) {
	plants, err := s.plants.List(r.Context())
	if err != nil {
		s.logger.Error("failed to list plants", "error", err, "request_id", requestIDFrom(r.Context()))
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, plants)
}

// handleCreatePlant validates the body and inserts a new plant.
func (s *Server) handleCreatePlant(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodePlantInput(w, r)
	if !ok {
		return
	}

	created, err := s.plants.Create(r.Context(), in)
	if err != nil {
		s.logger.Error("failed to create plant", "error", err, "request_id", requestIDFrom(r.Context()))
		writeInternalError(w)
		return
	}

	s.logger.Info("plant created", "plant_id", created.ID, "name", created.Name)
	s.emitPlantEvent(eventCreated, created)
	writeJSON(w, http.StatusCreated, created)
}

// handleGetPlant returns a single plant by ID.
func (s *Server) handleGetPlant(w http.ResponseWriter, r *http.Request) {
	id, ok := plantID(w, r)
	if !ok {
		return
	}

	p, err := s.plants.Get(r.Context(), id)
	if err != nil {
		s.writePlantError(w, r, "get", id, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleUpdatePlant replaces name, image and price of an existing plant.
// The body is validated before the plant is looked up.
func (s *Server) handleUpdatePlant(w http.ResponseWriter, r *http.Request) {
	id, ok := plantID(w, r)
	if !ok {
		return
	}

	in, ok := s.decodePlantInput(w, r)
	if !ok {
		return
	}

	updated, err := s.plants.Update(r.Context(), id, in)
	if err != nil {
		s.writePlantError(w, r, "update", id, err)
		return
	}

	s.logger.Info("plant updated", "plant_id", updated.ID)
	s.emitPlantEvent(eventUpdated, updated)
	writeJSON(w, http.StatusOK, updated)
}

// handleDeletePlant removes a plant by ID.
func (s *Server) handleDeletePlant(w http.ResponseWriter, r *http.Request) {
	id, ok := plantID(w, r)
	if !ok {
		return
	}

	if err := s.plants.Delete(r.Context(), id); err != nil {
		s.writePlantError(w, r, "delete", id, err)
		return
	}

	s.logger.Info("plant deleted", "plant_id", id)
	s.emitPlantEvent(eventDeleted, &plant.Plant{ID: id})
	writeJSON(w, http.StatusOK, map[string]string{"message": msgPlantDeleted})
}

// plantID parses the {id} route parameter. The router only admits digits,
// so the one failure left is overflow, which is reported as not found.
func plantID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeNotFound(w, msgPlantNotFound)
		return 0, false
	}
	return id, true
}

// decodePlantInput runs the shared body validator and writes a 400 on failure.
func (s *Server) decodePlantInput(w http.ResponseWriter, r *http.Request) (plant.Input, bool) {
	in, err := plant.DecodeInput(r.Body)
	if err != nil {
		var ve *plant.ValidationError
		if errors.As(err, &ve) {
			s.logger.Debug("plant validation failed",
				"kind", string(ve.Kind),
				"field", ve.Field,
				"request_id", requestIDFrom(r.Context()),
			)
			writeBadRequest(w, ve.Message)
			return plant.Input{}, false
		}
		writeBadRequest(w, err.Error())
		return plant.Input{}, false
	}
	return in, true
}

// writePlantError maps repository errors for item operations to responses.
func (s *Server) writePlantError(w http.ResponseWriter, r *http.Request, op string, id int64, err error) {
	if errors.Is(err, plant.ErrPlantNotFound) {
		writeNotFound(w, msgPlantNotFound)
		return
	}
	s.logger.Error("plant "+op+" failed",
		"plant_id", id,
		"error", err,
		"request_id", requestIDFrom(r.Context()),
	)
	writeInternalError(w)
}
