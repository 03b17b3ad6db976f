package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/eventpass/internal/passes/domain"
	"github.com/aussiebroadwan/eventpass/internal/passes/service"
	"github.com/aussiebroadwan/eventpass/pkg/httpx"
	"github.com/aussiebroadwan/eventpass/pkg/passsdk"
)

const msgEventNotOwned = "Event not found or not authorized"

type EventsHandler struct {
	EventService *service.EventService
}

// HandleCreate godoc
//
//	@Summary		Create Event
//	@Description	Create an event organized by the caller. Date is ISO 8601; pass limits are non-negative integers.
//	@Tags			Events
//	@Accept			json
//	@Produce		json
//	@Param			request	body		passsdk.EventRequest			true	"Event"
//	@Success		201		{object}	passsdk.IDResponse				"id"
//	@Failure		400		{object}	httpx.ValidationErrorResponse	"validation errors"
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/events [post].
func (h *EventsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	organizerID, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req passsdk.EventRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var v validation
	v.check(req.Name != nil && !blank(*req.Name), "name", "Name is required")
	date, dateOK := parseOptionalDate(req.Date)
	v.check(req.Date != nil && dateOK, "date", "Valid date is required")
	v.check(req.Location != nil && !blank(*req.Location), "location", "Location is required")
	v.check(req.Name == nil || !tooLong(*req.Name), "name", "Name "+msgTooLong)
	v.check(req.Location == nil || !tooLong(*req.Location), "location", "Location "+msgTooLong)
	v.check(validLimit(req.GoldPassLimit), "goldPassLimit", "Gold pass limit must be a positive integer")
	v.check(validLimit(req.SilverPassLimit), "silverPassLimit", "Silver pass limit must be a positive integer")
	v.check(validLimit(req.PlatinumPassLimit), "platinumPassLimit", "Platinum pass limit must be a positive integer")
	if len(v) > 0 {
		httpx.WriteValidation(w, v)
		return
	}

	id, err := h.EventService.Create(r.Context(), organizerID, domain.Event{
		Name:          *req.Name,
		Description:   req.Description,
		Date:          date,
		Location:      *req.Location,
		GoldLimit:     *req.GoldPassLimit,
		SilverLimit:   *req.SilverPassLimit,
		PlatinumLimit: *req.PlatinumPassLimit,
	})
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, passsdk.IDResponse{ID: id})
}

// HandleList godoc
//
//	@Summary		List Events
//	@Tags			Events
//	@Produce		json
//	@Success		200	{array}		passsdk.EventResponse
//	@Failure		500	{object}	httpx.ErrorResponse
//	@Router			/events [get].
func (h *EventsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	events, err := h.EventService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	out := make([]passsdk.EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, eventResponse(e))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet godoc
//
//	@Summary		Get Event
//	@Tags			Events
//	@Produce		json
//	@Param			id	path		int	true	"Event ID"
//	@Success		200	{object}	passsdk.EventResponse
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Failure		500	{object}	httpx.ErrorResponse
//	@Router			/events/{id} [get].
func (h *EventsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Event not found")
	if !ok {
		return
	}

	e, err := h.EventService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, eventResponse(e))
}

// HandleUpdate godoc
//
//	@Summary		Update Event
//	@Description	Partially update an event the caller organizes. Omitted fields keep their value; pass limits cannot be changed.
//	@Tags			Events
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"Event ID"
//	@Param			request	body		passsdk.EventRequest			true	"Fields to change"
//	@Success		200		{object}	passsdk.MessageResponse
//	@Failure		400		{object}	httpx.ValidationErrorResponse	"validation errors"
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse				"not found or not authorized"
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/events/{id} [put].
func (h *EventsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	organizerID, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, msgEventNotOwned)
	if !ok {
		return
	}

	var req passsdk.EventRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var v validation
	v.check(req.Name == nil || !blank(*req.Name), "name", "Name cannot be empty")
	date, dateOK := parseOptionalDate(req.Date)
	v.check(dateOK, "date", "Valid date is required")
	v.check(req.Location == nil || !blank(*req.Location), "location", "Location cannot be empty")
	v.check(req.Name == nil || !tooLong(*req.Name), "name", "Name "+msgTooLong)
	v.check(req.Location == nil || !tooLong(*req.Location), "location", "Location "+msgTooLong)
	if len(v) > 0 {
		httpx.WriteValidation(w, v)
		return
	}

	patch := domain.EventPatch{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
	}
	if req.Date != nil {
		patch.Date = &date
	}

	if err := h.EventService.Update(r.Context(), id, organizerID, patch); err != nil {
		writeServiceError(w, r, err, msgEventNotOwned)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, passsdk.MessageResponse{Message: "Event updated successfully"})
}

// HandleDelete godoc
//
//	@Summary		Delete Event
//	@Description	Delete an event the caller organizes.
//	@Tags			Events
//	@Produce		json
//	@Param			id	path		int	true	"Event ID"
//	@Success		200	{object}	passsdk.MessageResponse
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Failure		404	{object}	httpx.ErrorResponse	"not found or not authorized"
//	@Failure		500	{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/events/{id} [delete].
func (h *EventsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	organizerID, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, msgEventNotOwned)
	if !ok {
		return
	}

	if err := h.EventService.Delete(r.Context(), id, organizerID); err != nil {
		writeServiceError(w, r, err, msgEventNotOwned)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, passsdk.MessageResponse{Message: "Event deleted successfully"})
}

// parseOptionalDate reports ok for a nil date.
func parseOptionalDate(s *string) (date time.Time, ok bool) {
	if s == nil {
		return date, true
	}
	return parseISODate(*s)
}

func validLimit(n *int64) bool { return n != nil && *n >= 0 }

func eventResponse(e domain.Event) passsdk.EventResponse {
	return passsdk.EventResponse{
		ID:                e.ID,
		Name:              e.Name,
		Description:       e.Description,
		Date:              e.Date,
		Location:          e.Location,
		OrganizerID:       e.OrganizerID,
		GoldPassLimit:     e.GoldLimit,
		SilverPassLimit:   e.SilverLimit,
		PlatinumPassLimit: e.PlatinumLimit,
		CreatedAt:         e.CreatedAt,
	}
}
