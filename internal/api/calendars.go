package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SergeyKozhin/calendar-import/internal/model"
	"github.com/SergeyKozhin/calendar-import/internal/pkg/validator"
)

func (a *Api) getCalendarsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	calendars, err := a.calendarsService.GetCalendars(r.Context(), id)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("get calendars: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapSlice(calendars, mapToCalendarResp), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) setCalendarVisibilityHandler(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	calendarID, err := idParam(r, "calendarID")
	if err != nil {
		a.notFoundResponse(w, r)
		return
	}

	req := &struct {
		Visible *bool `json:"visible"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(req.Visible != nil, "visible", "visible must be provided")

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	calendar, err := a.calendarsService.SetVisibility(r.Context(), id, calendarID, *req.Visible)
	if err != nil {
		a.calendarErrorResponse(w, r, fmt.Errorf("set visibility: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToCalendarResp(calendar), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) setCalendarColorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	calendarID, err := idParam(r, "calendarID")
	if err != nil {
		a.notFoundResponse(w, r)
		return
	}

	req := &struct {
		Color string `json:"color"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(req.Color != "", "color", "color must be provided")

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	calendar, err := a.calendarsService.SetColor(r.Context(), id, calendarID, req.Color)
	if err != nil {
		a.calendarErrorResponse(w, r, fmt.Errorf("set color: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToCalendarResp(calendar), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) deleteCalendarHandler(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	calendarID, err := idParam(r, "calendarID")
	if err != nil {
		a.notFoundResponse(w, r)
		return
	}

	if err := a.calendarsService.DeleteCalendar(r.Context(), id, calendarID); err != nil {
		a.calendarErrorResponse(w, r, fmt.Errorf("delete calendar: %w", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) calendarErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrNoRecord):
		a.notFoundResponse(w, r)
	case errors.Is(err, model.ErrInvalidColor):
		a.failedValidationResponse(w, r, map[string]string{"color": "color must be a hex color like #3b82f6"})
	default:
		a.serverErrorResponse(w, r, err)
	}
}
