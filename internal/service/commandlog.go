package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"cooling_dashboard/internal/logger"
	"cooling_dashboard/internal/models"
	"cooling_dashboard/internal/publish"
	"cooling_dashboard/internal/repository"

	"github.com/google/uuid"
)

type CommandLogService struct {
	cmds repository.CommandRepo
}

func NewCommandLogService(cmds repository.CommandRepo) *CommandLogService {
	return &CommandLogService{cmds: cmds}
}

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}
	return from, to, strings.TrimSpace(strings.ToUpper(f.Type)), nil
}

func (s *CommandLogService) List(ctx context.Context, f LogFilter) ([]models.CommandEntry, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.cmds.List(ctx, from, to, typ)
}

// commandRecorder appends a change to the command log and pushes it to the
// realtime channel. Neither failure undoes the change; both are logged.
type commandRecorder struct {
	cmds repository.CommandRepo
	pub  publish.Publisher
	log  *logger.Logger
}

func (r commandRecorder) record(ctx context.Context, at time.Time, typ, description string, details map[string]any) {
	err := r.cmds.Append(ctx, models.CommandEntry{
		CommandID:   uuid.NewString(),
		OccurredAt:  at,
		Type:        typ,
		Description: description,
		Metadata:    details,
	})
	if err != nil {
		r.log.Errorw("command_log_append_failed", "type", typ, "err", err)
	}
	if err := r.pub.PublishCommand(typ, details); err != nil {
		r.log.Warnw("command_publish_failed", "type", typ, "err", err)
	}
}
