package event_store

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eventdesk/eventdesk/internal/rest"
	"github.com/eventdesk/eventdesk/pkg/event"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{s}
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	log.Trace("Listing events")

	events, err := h.service.ListEvents(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, events)
	log.Tracef("Events returned: %d", len(events))
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventId := mux.Vars(r)["eventId"]

	e, err := h.service.GetEvent(r.Context(), eventId)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var draft event.Event
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}

	created, err := h.service.CreateEvent(r.Context(), draft)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventId := mux.Vars(r)["eventId"]

	var e event.Event
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}

	updated, err := h.service.UpdateEvent(r.Context(), eventId, e)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventId := mux.Vars(r)["eventId"]

	if err := h.service.DeleteEvent(r.Context(), eventId); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEventNotFound):
		rest.WriteError(w, http.StatusNotFound, "Event not found", "")
	case errors.Is(err, ErrTitleRequired):
		rest.WriteError(w, http.StatusBadRequest, "Invalid event", "'title' must not be empty")
	default:
		log.Errorf("event request failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
