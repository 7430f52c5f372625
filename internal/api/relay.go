package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/SergeyKozhin/calendar-import/internal/metrics"
	"github.com/SergeyKozhin/calendar-import/internal/model"
	"google.golang.org/api/googleapi"
)

var relayCORSHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "authorization, x-client-info, apikey, content-type",
	"Access-Control-Allow-Methods": "POST, OPTIONS",
}

// relayCORS puts the permissive CORS headers on every relay response, errors included.
func relayCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range relayCORSHeaders {
			w.Header().Set(k, v)
		}
		next.ServeHTTP(w, r)
	})
}

func relayPreflightHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (a *Api) relayRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				a.logger.Errorw("google relay panic", "panic", rec)
				a.relayResponse(w, r, http.StatusInternalServerError, map[string]interface{}{
					"error":   "Internal server error",
					"details": fmt.Sprint(rec),
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (a *Api) relayResponse(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	metrics.RelayRequests.WithLabelValues(strconv.Itoa(status)).Inc()

	if err := a.writeJSON(w, status, data, nil); err != nil {
		a.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (a *Api) relayError(w http.ResponseWriter, r *http.Request, status int, message string) {
	a.relayResponse(w, r, status, map[string]interface{}{"error": message})
}

// googleRelayHandler lists a Google calendar with the server side credentials
// and answers with events already in the normalized shape.
func (a *Api) googleRelayHandler(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		CalendarID string `json:"calendarId"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.relayError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	calendarID := strings.TrimSpace(req.CalendarID)
	if calendarID == "" {
		a.relayError(w, r, http.StatusBadRequest, "calendarId is required")
		return
	}

	if a.relay.Calendar == nil {
		a.relayError(w, r, http.StatusInternalServerError, "Google API key not configured")
		return
	}

	now := a.relay.Now()
	items, err := a.relay.Calendar.ListEvents(r.Context(), calendarID, now, now.Add(a.relay.Window), a.relay.MaxResults)
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			a.logger.Infow("google calendar api error", "calendar_id", calendarID, "status", apiErr.Code)
			a.relayError(w, r, apiErr.Code, fmt.Sprintf("Google Calendar API error: %d - %s", apiErr.Code, apiErr.Body))
			return
		}

		a.logError(r, err)
		a.relayResponse(w, r, http.StatusInternalServerError, map[string]interface{}{
			"error":   "Internal server error",
			"details": err.Error(),
		})
		return
	}

	batch := a.relay.Normalizer.FromGoogle(items)
	if batch.Warnings != nil {
		a.logger.Infow("google events repaired while normalizing", "calendar_id", calendarID, "details", batch.Warnings.Error())
	}

	events := batch.Events
	if events == nil {
		events = []*model.NormalizedEvent{}
	}

	a.relayResponse(w, r, http.StatusOK, map[string]interface{}{"events": events})
}
