package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SergeyKozhin/calendar-import/internal/database/dbtest"
	"github.com/SergeyKozhin/calendar-import/internal/model"
	"github.com/SergeyKozhin/calendar-import/internal/normalize"
	"github.com/SergeyKozhin/calendar-import/internal/pkg/jwt"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testToken  = "good-token"
	testUserID = "user-1"
)

type fakeJWT struct{}

func (fakeJWT) GetIdFromToken(token string) (string, error) {
	if token != testToken {
		return "", &jwt.InvalidTokenError{}
	}
	return testUserID, nil
}

type mockImports struct {
	mock.Mock
}

func (m *mockImports) Preview(ctx context.Context, userID, rawURL string) (*model.ImportPreview, error) {
	args := m.Called(ctx, userID, rawURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ImportPreview), args.Error(1)
}

func (m *mockImports) Import(ctx context.Context, userID string, req *model.ImportRequest) (*model.ImportResult, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ImportResult), args.Error(1)
}

func (m *mockImports) Cancel(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockCalendars struct {
	mock.Mock
}

func (m *mockCalendars) GetCalendars(ctx context.Context, userID string) ([]*model.Calendar, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Calendar), args.Error(1)
}

func (m *mockCalendars) SetVisibility(ctx context.Context, userID string, id int64, visible bool) (*model.Calendar, error) {
	args := m.Called(ctx, userID, id, visible)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Calendar), args.Error(1)
}

func (m *mockCalendars) SetColor(ctx context.Context, userID string, id int64, code string) (*model.Calendar, error) {
	args := m.Called(ctx, userID, id, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Calendar), args.Error(1)
}

func (m *mockCalendars) DeleteCalendar(ctx context.Context, userID string, id int64) error {
	return m.Called(ctx, userID, id).Error(0)
}

type mockEvents struct {
	mock.Mock
}

func (m *mockEvents) GetEvents(ctx context.Context, filter model.EventsFilter) ([]*model.Event, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

var relayNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type testApi struct {
	*Api
	db        *dbtest.DB
	imports   *mockImports
	calendars *mockCalendars
	events    *mockEvents
}

func newTestApi(t *testing.T, google googleCalendar) *testApi {
	t.Helper()

	ta := &testApi{
		db:        dbtest.NewDB(),
		imports:   &mockImports{},
		calendars: &mockCalendars{},
		events:    &mockEvents{},
	}

	a, err := NewApi(
		zap.NewNop().Sugar(),
		fakeJWT{},
		ta.db,
		ta.imports,
		ta.calendars,
		ta.events,
		RelayOptions{
			Calendar:   google,
			Normalizer: normalize.New(normalize.Options{Now: func() time.Time { return relayNow }}),
			Window:     180 * 24 * time.Hour,
			MaxResults: 250,
			Now:        func() time.Time { return relayNow },
		},
	)
	require.NoError(t, err)
	ta.Api = a

	return ta
}

func (ta *testApi) do(method, path, body string, authed bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}

	rec := httptest.NewRecorder()
	ta.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var res map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}
