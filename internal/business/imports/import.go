package imports

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SergeyKozhin/calendar-import/internal/database"
	"github.com/SergeyKozhin/calendar-import/internal/metrics"
	"github.com/SergeyKozhin/calendar-import/internal/model"
	"github.com/gerow/go-color"
)

const outcomeOK = "ok"

// Import fetches the calendar behind req.URL and stores it with its events in one transaction.
func (s *Service) Import(ctx context.Context, userID string, req *model.ImportRequest) (res *model.ImportResult, err error) {
	var requested *color.RGB
	if req.Color != "" {
		c, err := model.ParseColor(req.Color)
		if err != nil {
			return nil, model.NewImportError(model.StageRequest, model.KindInvalidRequest, msgBadColor, err)
		}
		requested = &c
	}

	session, err := s.begin(ctx, userID, req.URL)
	if err != nil {
		return nil, err
	}
	defer s.finish(ctx, session)

	defer func() {
		outcome := outcomeOK
		var importErr *model.ImportError
		switch {
		case errors.As(err, &importErr):
			outcome = string(importErr.Kind)
		case err != nil:
			outcome = "error"
		}
		metrics.Imports.WithLabelValues(string(session.Source), outcome).Inc()
	}()

	calendarColor := session.Source.DefaultColor()
	if requested != nil {
		calendarColor = *requested
	}

	events, err := s.collect(ctx, session)
	if err != nil {
		return nil, err
	}

	unique, skipped := dedupe(events)

	calendar, err := s.persist(ctx, session, &model.CalendarCreate{
		UserID:         userID,
		Name:           calendarName(session, req.Name),
		Color:          calendarColor,
		URL:            session.RawURL,
		IsVisible:      true,
		ExternalSource: session.Source,
		ExternalID:     originID(session),
	}, unique)
	if err != nil {
		return nil, err
	}

	metrics.ImportedEvents.WithLabelValues(string(session.Source)).Add(float64(len(unique)))
	s.logger.Infow("calendar imported",
		"session", session.ID,
		"calendar_id", calendar.ID,
		"source", session.Source,
		"imported", len(unique),
		"skipped", skipped,
	)

	return &model.ImportResult{
		Calendar: calendar,
		Imported: len(unique),
		Skipped:  skipped,
	}, nil
}

func (s *Service) persist(ctx context.Context, session *model.ImportSession, info *model.CalendarCreate, events []*model.NormalizedEvent) (*model.Calendar, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, persistError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx)

	var calendarID int64
	if s.policy == model.DedupUpsert {
		calendarID, err = s.upsert(ctx, tx, info, events)
	} else {
		calendarID, err = s.snapshot(ctx, tx, info, events)
	}
	if err != nil {
		return nil, persistError(err)
	}

	calendar, err := s.calendarsRepository.GetCalendar(ctx, tx, info.UserID, calendarID)
	if err != nil {
		return nil, persistError(fmt.Errorf("calendarsRepository.GetCalendar: %w", err))
	}

	if err := s.ensureActive(ctx, session); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, persistError(fmt.Errorf("commit tx: %w", err))
	}

	return calendar, nil
}

func (s *Service) snapshot(ctx context.Context, tx database.Tx, info *model.CalendarCreate, events []*model.NormalizedEvent) (int64, error) {
	id, err := s.calendarsRepository.CreateCalendar(ctx, tx, info)
	if err != nil {
		return 0, fmt.Errorf("calendarsRepository.CreateCalendar: %w", err)
	}

	if _, err := s.eventsRepository.CreateEvents(ctx, tx, eventRows(info, id, events)); err != nil {
		return 0, fmt.Errorf("eventsRepository.CreateEvents: %w", err)
	}

	return id, nil
}

// upsert merges the import into the calendar previously imported from the same origin.
func (s *Service) upsert(ctx context.Context, tx database.Tx, info *model.CalendarCreate, events []*model.NormalizedEvent) (int64, error) {
	existing, err := s.calendarsRepository.GetCalendarByOrigin(ctx, tx, info.UserID, info.ExternalSource, info.ExternalID)
	switch {
	case errors.Is(err, model.ErrNoRecord):
		return s.snapshot(ctx, tx, info, events)
	case err != nil:
		return 0, fmt.Errorf("calendarsRepository.GetCalendarByOrigin: %w", err)
	}

	if err := s.calendarsRepository.Touch(ctx, tx, info.UserID, existing.ID); err != nil {
		return 0, fmt.Errorf("calendarsRepository.Touch: %w", err)
	}

	rows := eventRows(&existing.CalendarCreate, existing.ID, events)
	if _, err := s.eventsRepository.UpsertEvents(ctx, tx, rows); err != nil {
		return 0, fmt.Errorf("eventsRepository.UpsertEvents: %w", err)
	}

	keep := make([]string, len(events))
	for i, e := range events {
		keep[i] = e.ExternalID
	}

	if _, err := s.eventsRepository.DeleteStaleEvents(ctx, tx, existing.ID, keep); err != nil {
		return 0, fmt.Errorf("eventsRepository.DeleteStaleEvents: %w", err)
	}

	return existing.ID, nil
}

func persistError(err error) error {
	return model.NewImportError(model.StagePersist, model.KindPersistenceFailure, msgSaveFailed, err)
}

func eventRows(calendar *model.CalendarCreate, calendarID int64, events []*model.NormalizedEvent) []*model.EventCreate {
	colorCode := model.ColorCode(calendar.Color)
	source := calendar.ExternalSource

	rows := make([]*model.EventCreate, len(events))
	for i, e := range events {
		externalID := e.ExternalID
		rows[i] = &model.EventCreate{
			UserID:         calendar.UserID,
			CalendarID:     &calendarID,
			ExternalID:     &externalID,
			Title:          e.Title,
			Description:    e.Description,
			Location:       e.Location,
			StartTime:      e.Start,
			EndTime:        e.End,
			AllDay:         e.AllDay,
			ColorCode:      colorCode,
			ExternalSource: &source,
			SyncStatus:     model.SyncStatusSynced,
		}
	}

	return rows
}

// dedupe keeps the last event of every external id, in first-seen order.
func dedupe(events []*model.NormalizedEvent) ([]*model.NormalizedEvent, int) {
	index := make(map[string]int, len(events))
	res := make([]*model.NormalizedEvent, 0, len(events))

	for _, e := range events {
		if i, ok := index[e.ExternalID]; ok {
			res[i] = e
			continue
		}
		index[e.ExternalID] = len(res)
		res = append(res, e)
	}

	return res, len(events) - len(res)
}

func calendarName(session *model.ImportSession, requested string) string {
	if name := strings.TrimSpace(requested); name != "" {
		return name
	}

	if session.Source == model.SourceGoogle {
		local := session.CalendarID
		if at := strings.Index(local, "@"); at >= 0 {
			local = local[:at]
		}
		return fmt.Sprintf(googleNameTmpl, local)
	}

	return session.Source.DisplayName()
}

// originID identifies the remote calendar, it is what repeated imports are matched on.
func originID(session *model.ImportSession) string {
	if session.Source == model.SourceGoogle {
		return session.CalendarID
	}
	return session.FetchURL
}
