package api

import (
	"context"
	"net/http"
	"time"

	"github.com/SergeyKozhin/calendar-import/internal/database"
	"github.com/SergeyKozhin/calendar-import/internal/model"
	"github.com/SergeyKozhin/calendar-import/internal/normalize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"google.golang.org/api/calendar/v3"
)

type Api struct {
	handler http.Handler
	logger  *zap.SugaredLogger

	jwts jwtManager
	db   database.PGX

	importsService   importsService
	calendarsService calendarsService
	eventsService    eventsService

	relay RelayOptions
}

type jwtManager interface {
	GetIdFromToken(token string) (string, error)
}

type importsService interface {
	Preview(ctx context.Context, userID, rawURL string) (*model.ImportPreview, error)
	Import(ctx context.Context, userID string, req *model.ImportRequest) (*model.ImportResult, error)
	Cancel(ctx context.Context, userID string) error
}

type calendarsService interface {
	GetCalendars(ctx context.Context, userID string) ([]*model.Calendar, error)
	SetVisibility(ctx context.Context, userID string, id int64, visible bool) (*model.Calendar, error)
	SetColor(ctx context.Context, userID string, id int64, code string) (*model.Calendar, error)
	DeleteCalendar(ctx context.Context, userID string, id int64) error
}

type eventsService interface {
	GetEvents(ctx context.Context, filter model.EventsFilter) ([]*model.Event, error)
}

type googleCalendar interface {
	ListEvents(ctx context.Context, calendarID string, from, to time.Time, limit int64) ([]*calendar.Event, error)
}

type googleNormalizer interface {
	FromGoogle(items []*calendar.Event) *normalize.Batch
}

// RelayOptions configures the Google Calendar relay. A nil Calendar means no server side credentials.
type RelayOptions struct {
	Calendar   googleCalendar
	Normalizer googleNormalizer
	Window     time.Duration
	MaxResults int64
	Now        func() time.Time
}

func NewApi(
	logger *zap.SugaredLogger,
	jwts jwtManager,
	db database.PGX,
	importsService importsService,
	calendarsService calendarsService,
	eventsService eventsService,
	relay RelayOptions,
) (*Api, error) {
	if relay.Now == nil {
		relay.Now = time.Now
	}

	a := &Api{
		logger:           logger,
		jwts:             jwts,
		db:               db,
		importsService:   importsService,
		calendarsService: calendarsService,
		eventsService:    eventsService,
		relay:            relay,
	}
	a.setupHandler()

	return a, nil
}

func (a *Api) setupHandler() {
	middleware.DefaultLogger = func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.logger.Debugw(r.URL.RequestURI(),
				"addr", r.RemoteAddr,
				"protocol", r.Proto,
				"method", r.Method,
			)
			next.ServeHTTP(w, r)
		})
	}

	r := chi.NewMux()

	r.Use(middleware.Logger, middleware.Recoverer, middleware.StripSlashes)
	r.NotFound(a.notFoundResponse)
	r.MethodNotAllowed(a.methodNotAllowedResponse)

	r.Get("/healthcheck", a.healthcheckHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/relay/google-calendar", func(r chi.Router) {
		r.Use(relayCORS, a.relayRecoverer)
		r.Options("/", relayPreflightHandler)
		r.Post("/", a.googleRelayHandler)
	})

	r.With(a.auth).Route("/", func(r chi.Router) {
		r.Route("/imports", func(r chi.Router) {
			r.Post("/", a.importHandler)
			r.Post("/preview", a.previewImportHandler)
			r.Delete("/active", a.cancelImportHandler)
		})

		r.Route("/calendars", func(r chi.Router) {
			r.Get("/", a.getCalendarsHandler)
			r.Route("/{calendarID}", func(r chi.Router) {
				r.Delete("/", a.deleteCalendarHandler)
				r.Patch("/visibility", a.setCalendarVisibilityHandler)
				r.Patch("/color", a.setCalendarColorHandler)
			})
		})

		r.Get("/events", a.getEventsHandler)
	})

	a.handler = r
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

func (a *Api) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := a.db.ExecRaw(r.Context(), "select 1"); err != nil {
		a.logError(r, err)
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}
