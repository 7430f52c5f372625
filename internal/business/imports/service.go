package imports

import (
	"context"
	"fmt"
	"time"

	"github.com/SergeyKozhin/calendar-import/internal/database"
	"github.com/SergeyKozhin/calendar-import/internal/model"
	"github.com/SergeyKozhin/calendar-import/internal/normalize"
	"github.com/SergeyKozhin/calendar-import/internal/transport"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgMalformed   = "calendar data is corrupted or in an unsupported format"
	msgNoEvents    = "no events found in calendar"
	msgCancelled   = "import was cancelled or superseded by a newer one"
	msgSaveFailed  = "failed to save calendar"
	msgBadColor    = "color must be a hex color like #3b82f6"
	googleNameTmpl = "Google Calendar (%s)"
)

type Service struct {
	db                  database.PGX
	logger              *zap.SugaredLogger
	fetcher             fetcher
	normalizer          *normalize.Normalizer
	sessions            sessionRegistry
	calendarsRepository calendarsRepository
	eventsRepository    eventsRepository
	policy              model.DedupPolicy
	now                 func() time.Time
	newID               func() string
}

type fetcher interface {
	Fetch(ctx context.Context, session *model.ImportSession) (*transport.Payload, error)
}

type sessionRegistry interface {
	Begin(ctx context.Context, userID, sessionID string) error
	IsActive(ctx context.Context, userID, sessionID string) (bool, error)
	Finish(ctx context.Context, userID, sessionID string) error
	Cancel(ctx context.Context, userID string) error
}

type calendarsRepository interface {
	CreateCalendar(ctx context.Context, q database.Queryable, calendar *model.CalendarCreate) (int64, error)
	GetCalendar(ctx context.Context, q database.Queryable, userID string, id int64) (*model.Calendar, error)
	GetCalendarByOrigin(ctx context.Context, q database.Queryable, userID string, source model.ExternalSource, externalID string) (*model.Calendar, error)
	Touch(ctx context.Context, q database.Queryable, userID string, id int64) error
}

type eventsRepository interface {
	CreateEvents(ctx context.Context, q database.Queryable, events []*model.EventCreate) (int64, error)
	UpsertEvents(ctx context.Context, q database.Queryable, events []*model.EventCreate) (int64, error)
	DeleteStaleEvents(ctx context.Context, q database.Queryable, calendarID int64, keep []string) (int64, error)
}

type Deps struct {
	DB                  database.PGX
	Logger              *zap.SugaredLogger
	Fetcher             fetcher
	Normalizer          *normalize.Normalizer
	Sessions            sessionRegistry
	CalendarsRepository calendarsRepository
	EventsRepository    eventsRepository
	Policy              model.DedupPolicy
}

func NewService(deps Deps) *Service {
	policy := deps.Policy
	if policy == "" {
		policy = model.DedupSnapshot
	}

	return &Service{
		db:                  deps.DB,
		logger:              deps.Logger,
		fetcher:             deps.Fetcher,
		normalizer:          deps.Normalizer,
		sessions:            deps.Sessions,
		calendarsRepository: deps.CalendarsRepository,
		eventsRepository:    deps.EventsRepository,
		policy:              policy,
		now:                 time.Now,
		newID:               uuid.NewString,
	}
}

// Cancel drops the user's active session, a pipeline still running for it discards its result.
func (s *Service) Cancel(ctx context.Context, userID string) error {
	if err := s.sessions.Cancel(ctx, userID); err != nil {
		return fmt.Errorf("sessions.Cancel: %w", err)
	}

	s.logger.Infow("import session cancelled", "user_id", userID)
	return nil
}
