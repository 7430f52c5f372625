package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/SergeyKozhin/calendar-import/internal/model"
)

type corsRelayResponse struct {
	Contents *string `json:"contents"`
}

func (f *Fetcher) fetchICS(ctx context.Context, target string) (*Payload, error) {
	relayURL, err := url.Parse(f.corsRelayURL)
	if err != nil {
		return nil, model.NewImportError(model.StageFetch, model.KindTransportFailure, msgFetchFailed, err)
	}
	q := relayURL.Query()
	q.Set("url", target)
	relayURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, relayURL.String(), nil)
	if err != nil {
		return nil, model.NewImportError(model.StageFetch, model.KindTransportFailure, msgFetchFailed, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, f.transportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp)
	}

	var decoded corsRelayResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&decoded); err != nil {
		if ctx.Err() != nil {
			return nil, f.transportError(ctx, err)
		}
		return nil, model.NewImportError(model.StageFetch, model.KindTransportFailure, msgDecodeFailed, err)
	}

	if decoded.Contents == nil || len(strings.TrimSpace(*decoded.Contents)) < f.minContentLength {
		return nil, model.NewImportError(model.StageFetch, model.KindInvalidPayload, msgInvalidPayload, nil)
	}

	return &Payload{ICS: *decoded.Contents}, nil
}
