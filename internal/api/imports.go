package api

import (
	"net/http"
	"strings"

	"github.com/SergeyKozhin/calendar-import/internal/model"
	"github.com/SergeyKozhin/calendar-import/internal/pkg/validator"
)

type previewResp struct {
	Source     model.ExternalSource     `json:"source"`
	CalendarID string                   `json:"calendar_id,omitempty"`
	FetchURL   string                   `json:"fetch_url"`
	Events     []*model.NormalizedEvent `json:"events"`
}

func (a *Api) previewImportHandler(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	req := &struct {
		URL string `json:"url"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(strings.TrimSpace(req.URL) != "", "url", "url must be provided")

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	preview, err := a.importsService.Preview(r.Context(), id, req.URL)
	if err != nil {
		a.importErrorResponse(w, r, err)
		return
	}

	events := preview.Events
	if events == nil {
		events = []*model.NormalizedEvent{}
	}

	resp := &previewResp{
		Source:     preview.Session.Source,
		CalendarID: preview.Session.CalendarID,
		FetchURL:   preview.Session.FetchURL,
		Events:     events,
	}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) importHandler(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	req := &struct {
		URL   string `json:"url"`
		Name  string `json:"name"`
		Color string `json:"color"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(strings.TrimSpace(req.URL) != "", "url", "url must be provided")
	v.Check(len(req.Name) <= 255, "name", "name must not be longer than 255 characters")
	if req.Color != "" {
		_, err := model.ParseColor(req.Color)
		v.Check(err == nil, "color", "color must be a hex color like #3b82f6")
	}

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	res, err := a.importsService.Import(r.Context(), id, &model.ImportRequest{
		URL:   req.URL,
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		a.importErrorResponse(w, r, err)
		return
	}

	resp := &struct {
		Calendar *calendarResp `json:"calendar"`
		Imported int           `json:"imported"`
		Skipped  int           `json:"skipped"`
	}{
		Calendar: mapToCalendarResp(res.Calendar),
		Imported: res.Imported,
		Skipped:  res.Skipped,
	}

	if err := a.writeJSON(w, http.StatusCreated, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) cancelImportHandler(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.importsService.Cancel(r.Context(), id); err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
