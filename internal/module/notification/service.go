package notification

import (
	"context"
	"time"

	"github.com/opstrack/server/internal/utils/metrics"
	"go.uber.org/zap"
)

// Service generates and manages notifications.
type Service struct {
	repo    Repository
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates a new notification service.
func NewService(repo Repository, m *metrics.Metrics, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// GetOrCreateSettings returns the settings row, creating the defaults
// on first access.
func (s *Service) GetOrCreateSettings(ctx context.Context) (*Settings, error) {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}

	settings = DefaultSettings()
	if err := s.repo.SaveSettings(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// UpdateSettings applies the non-nil fields of the request.
func (s *Service) UpdateSettings(ctx context.Context, req *SettingsUpdateRequest) (*Settings, error) {
	settings, err := s.GetOrCreateSettings(ctx)
	if err != nil {
		return nil, err
	}

	if req.DueDateReminderDays != nil {
		settings.DueDateReminderDays = *req.DueDateReminderDays
	}
	if req.EnableDueDateReminders != nil {
		settings.EnableDueDateReminders = *req.EnableDueDateReminders
	}
	if req.EnableMissingBriefAlerts != nil {
		settings.EnableMissingBriefAlerts = *req.EnableMissingBriefAlerts
	}
	if req.EnableMissingDoDAlerts != nil {
		settings.EnableMissingDoDAlerts = *req.EnableMissingDoDAlerts
	}
	if req.StaleTaskDays != nil {
		settings.StaleTaskDays = *req.StaleTaskDays
	}
	if req.EnableStaleTaskAlerts != nil {
		settings.EnableStaleTaskAlerts = *req.EnableStaleTaskAlerts
	}
	if req.EnableReviewReminders != nil {
		settings.EnableReviewReminders = *req.EnableReviewReminders
	}
	if req.ReviewReminderFrequencyDays != nil {
		settings.ReviewReminderFrequencyDays = *req.ReviewReminderFrequencyDays
	}

	if err := s.repo.SaveSettings(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// GenerateAll runs every enabled generator and persists the new
// notifications. Tasks and projects that already carry a pending or
// sent notification of the same type are skipped.
func (s *Service) GenerateAll(ctx context.Context) ([]*Notification, error) {
	settings, err := s.GetOrCreateSettings(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var planned []*Notification

	dueDate, err := s.planDueDateReminders(ctx, settings, now)
	if err != nil {
		return nil, err
	}
	planned = append(planned, dueDate...)

	missing, err := s.planMissingComponents(ctx, settings, now)
	if err != nil {
		return nil, err
	}
	planned = append(planned, missing...)

	stale, err := s.planStaleTasks(ctx, settings, now)
	if err != nil {
		return nil, err
	}
	planned = append(planned, stale...)

	reviews, err := s.planReviewSchedules(ctx, settings, now)
	if err != nil {
		return nil, err
	}
	planned = append(planned, reviews...)

	if err := s.repo.CreateBatch(ctx, planned); err != nil {
		return nil, err
	}

	for _, n := range planned {
		s.metrics.RecordNotificationGenerated(string(n.Type))
	}
	if counts, err := s.repo.CountByStatus(ctx); err == nil {
		s.metrics.NotificationsPending.Set(float64(counts.Pending))
	}

	if len(planned) > 0 {
		s.logger.Info("notifications generated", zap.Int("count", len(planned)))
	}
	return planned, nil
}

func (s *Service) planDueDateReminders(ctx context.Context, settings *Settings, now time.Time) ([]*Notification, error) {
	if !settings.EnableDueDateReminders {
		return nil, nil
	}

	deadline := now.AddDate(0, 0, settings.DueDateReminderDays)
	tasks, err := s.repo.ListTasksDueBefore(ctx, deadline)
	if err != nil {
		return nil, err
	}

	active, err := s.repo.ActiveTaskIDs(ctx, TypeDueDateReminder)
	if err != nil {
		return nil, err
	}

	var planned []*Notification
	for _, t := range tasks {
		if active[t.ID] {
			continue
		}
		planned = append(planned, dueDateNotification(t, now))
	}
	return planned, nil
}

func (s *Service) planMissingComponents(ctx context.Context, settings *Settings, now time.Time) ([]*Notification, error) {
	if !settings.EnableMissingBriefAlerts && !settings.EnableMissingDoDAlerts {
		return nil, nil
	}

	tasks, err := s.repo.ListOpenTasks(ctx)
	if err != nil {
		return nil, err
	}

	var planned []*Notification

	if settings.EnableMissingBriefAlerts {
		withBrief, err := s.repo.TaskIDsWithBrief(ctx)
		if err != nil {
			return nil, err
		}
		active, err := s.repo.ActiveTaskIDs(ctx, TypeMissingBrief)
		if err != nil {
			return nil, err
		}
		for _, t := range tasks {
			if withBrief[t.ID] || active[t.ID] {
				continue
			}
			planned = append(planned, missingBriefNotification(t, now))
		}
	}

	if settings.EnableMissingDoDAlerts {
		withDoD, err := s.repo.TaskIDsWithDoD(ctx)
		if err != nil {
			return nil, err
		}
		active, err := s.repo.ActiveTaskIDs(ctx, TypeMissingDoD)
		if err != nil {
			return nil, err
		}
		for _, t := range tasks {
			if withDoD[t.ID] || active[t.ID] {
				continue
			}
			planned = append(planned, missingDoDNotification(t, now))
		}
	}

	return planned, nil
}

func (s *Service) planStaleTasks(ctx context.Context, settings *Settings, now time.Time) ([]*Notification, error) {
	if !settings.EnableStaleTaskAlerts {
		return nil, nil
	}

	threshold := now.AddDate(0, 0, -settings.StaleTaskDays)
	tasks, err := s.repo.ListStaleTasks(ctx, threshold)
	if err != nil {
		return nil, err
	}

	active, err := s.repo.ActiveTaskIDs(ctx, TypeStaleTask)
	if err != nil {
		return nil, err
	}

	var planned []*Notification
	for _, t := range tasks {
		if active[t.ID] {
			continue
		}
		planned = append(planned, staleTaskNotification(t, now))
	}
	return planned, nil
}

func (s *Service) planReviewSchedules(ctx context.Context, settings *Settings, now time.Time) ([]*Notification, error) {
	if !settings.EnableReviewReminders {
		return nil, nil
	}

	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	since := now.AddDate(0, 0, -settings.ReviewReminderFrequencyDays)
	recentlyReviewed, err := s.repo.ProjectIDsWithRecentReview(ctx, since)
	if err != nil {
		return nil, err
	}

	active, err := s.repo.ActiveProjectIDs(ctx, TypeReviewSchedule)
	if err != nil {
		return nil, err
	}

	var planned []*Notification
	for _, p := range projects {
		if recentlyReviewed[p.ID] || active[p.ID] {
			continue
		}
		planned = append(planned, reviewScheduleNotification(p, now))
	}
	return planned, nil
}

// List returns notifications, newest first, optionally per status.
func (s *Service) List(ctx context.Context, status Status, limit int) ([]*Notification, error) {
	return s.repo.List(ctx, status, limit)
}

// ListPending returns undelivered notifications whose schedule has
// arrived.
func (s *Service) ListPending(ctx context.Context) ([]*Notification, error) {
	return s.repo.ListPending(ctx, s.now())
}

// MarkRead marks a notification as read.
func (s *Service) MarkRead(ctx context.Context, id uint) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	now := s.now()
	n.Status = StatusRead
	n.ReadAt = &now
	return s.repo.Update(ctx, n)
}

// Dismiss marks a notification as dismissed.
func (s *Service) Dismiss(ctx context.Context, id uint) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	now := s.now()
	n.Status = StatusDismissed
	n.DismissedAt = &now
	return s.repo.Update(ctx, n)
}

// Stats counts notifications per status.
func (s *Service) Stats(ctx context.Context) (StatusCounts, error) {
	return s.repo.CountByStatus(ctx)
}
