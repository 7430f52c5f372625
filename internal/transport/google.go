package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/SergeyKozhin/calendar-import/internal/model"
)

type googleRelayRequest struct {
	CalendarID string `json:"calendarId"`
}

type googleRelayResponse struct {
	Events []*model.NormalizedEvent `json:"events"`
	Error  string                   `json:"error"`
}

func (f *Fetcher) fetchGoogle(ctx context.Context, calendarID string) (*Payload, error) {
	body, err := json.Marshal(&googleRelayRequest{CalendarID: calendarID})
	if err != nil {
		return nil, fmt.Errorf("marshal relay request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.googleRelayURL, bytes.NewReader(body))
	if err != nil {
		return nil, model.NewImportError(model.StageFetch, model.KindTransportFailure, msgFetchFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, f.transportError(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, f.transportError(ctx, err)
	}

	var decoded googleRelayResponse
	decodeErr := json.Unmarshal(raw, &decoded)

	// the relay error text is shown to the user verbatim
	if decodeErr == nil && decoded.Error != "" {
		return nil, model.NewImportError(model.StageFetch, model.KindTransportFailure, decoded.Error, nil)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp)
	}
	if decodeErr != nil {
		return nil, model.NewImportError(model.StageFetch, model.KindTransportFailure, msgDecodeFailed, decodeErr)
	}

	for _, ev := range decoded.Events {
		if ev == nil {
			return nil, model.NewImportError(model.StageFetch, model.KindInvalidPayload, msgInvalidPayload, nil)
		}
		ev.Source = model.SourceGoogle
		if ev.End.Before(ev.Start) {
			ev.End = ev.Start
		}
	}

	return &Payload{Events: decoded.Events}, nil
}
