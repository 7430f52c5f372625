package imports

import (
	"context"
	"errors"
	"fmt"

	"github.com/SergeyKozhin/calendar-import/internal/classifier"
	"github.com/SergeyKozhin/calendar-import/internal/ics"
	"github.com/SergeyKozhin/calendar-import/internal/model"
)

// Preview runs the pipeline up to normalization and returns what an import would write.
func (s *Service) Preview(ctx context.Context, userID, rawURL string) (*model.ImportPreview, error) {
	session, err := s.begin(ctx, userID, rawURL)
	if err != nil {
		return nil, err
	}
	defer s.finish(ctx, session)

	events, err := s.collect(ctx, session)
	if err != nil {
		return nil, err
	}

	return &model.ImportPreview{
		Session: session,
		Events:  events,
	}, nil
}

func (s *Service) begin(ctx context.Context, userID, rawURL string) (*model.ImportSession, error) {
	res := classifier.Classify(rawURL)
	session := &model.ImportSession{
		ID:         s.newID(),
		UserID:     userID,
		RawURL:     rawURL,
		Source:     res.Source,
		CalendarID: res.CalendarID,
		FetchURL:   res.FetchURL,
		StartedAt:  s.now(),
	}

	if res.Ambiguous {
		s.logger.Infow("url matched no known provider, treating it as an ics feed", "session", session.ID)
	}

	if err := s.sessions.Begin(ctx, userID, session.ID); err != nil {
		return nil, fmt.Errorf("sessions.Begin: %w", err)
	}

	return session, nil
}

func (s *Service) finish(ctx context.Context, session *model.ImportSession) {
	if err := s.sessions.Finish(ctx, session.UserID, session.ID); err != nil {
		s.logger.Errorw("failed to finish import session", "session", session.ID, "error", err)
	}
}

// collect fetches and normalizes the calendar of the session.
func (s *Service) collect(ctx context.Context, session *model.ImportSession) ([]*model.NormalizedEvent, error) {
	payload, err := s.fetcher.Fetch(ctx, session)
	if err != nil {
		return nil, err
	}

	if err := s.ensureActive(ctx, session); err != nil {
		return nil, err
	}

	if session.Source == model.SourceGoogle {
		return payload.Events, nil
	}

	blocks, err := ics.Parse(payload.ICS)
	if err != nil {
		if errors.Is(err, ics.ErrMalformed) {
			return nil, model.NewImportError(model.StageParse, model.KindMalformed, msgMalformed, err)
		}
		return nil, fmt.Errorf("ics.Parse: %w", err)
	}

	batch := s.normalizer.FromICS(blocks, session.Source)
	if batch.Warnings != nil {
		s.logger.Infow("calendar data repaired while normalizing",
			"session", session.ID,
			"warnings", len(batch.Warnings.Errors),
			"details", batch.Warnings.Error(),
		)
	}

	if len(batch.Events) == 0 {
		return nil, model.NewImportError(model.StageParse, model.KindNoEvents, msgNoEvents, nil)
	}

	return batch.Events, nil
}

func (s *Service) ensureActive(ctx context.Context, session *model.ImportSession) error {
	active, err := s.sessions.IsActive(ctx, session.UserID, session.ID)
	if err != nil {
		return fmt.Errorf("sessions.IsActive: %w", err)
	}

	if !active {
		s.logger.Infow("discarding result of stale import session", "session", session.ID)
		return model.NewImportError(model.StageSession, model.KindCancelled, msgCancelled, nil)
	}

	return nil
}
