package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SergeyKozhin/calendar-import/internal/model"
)

func (a *Api) getEventsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	filter, err := parseEventsQuery(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}
	filter.UserID = id

	events, err := a.eventsService.GetEvents(r.Context(), *filter)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("get events: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapSlice(events, mapToEventResp), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func parseEventsQuery(r *http.Request) (*model.EventsFilter, error) {
	var err error

	res := &model.EventsFilter{}

	v := r.URL.Query().Get("from")
	if v == "" {
		return nil, fmt.Errorf("from must be provided")
	}
	res.From, err = time.Parse(dateTimeFormat, v)
	if err != nil {
		return nil, fmt.Errorf("invalid time format: %w", err)
	}

	v = r.URL.Query().Get("to")
	if v == "" {
		return nil, fmt.Errorf("to must be provided")
	}
	res.To, err = time.Parse(dateTimeFormat, v)
	if err != nil {
		return nil, fmt.Errorf("invalid time format: %w", err)
	}

	if !res.To.After(res.From) {
		return nil, fmt.Errorf("to must be after from")
	}

	return res, nil
}
