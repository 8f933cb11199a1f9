package service

import (
	"sync"
	"time"

	"github.com/dafibh/pennywise/pennywise-backend/internal/analytics"
	"github.com/dafibh/pennywise/pennywise-backend/internal/domain"
	"github.com/dafibh/pennywise/pennywise-backend/internal/event"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// SavingsService handles savings goals
type SavingsService struct {
	goalRepo  domain.GoalRepository
	publisher event.Publisher
	now       func() time.Time
	mu        sync.Mutex
}

// NewSavingsService creates a new SavingsService
func NewSavingsService(goalRepo domain.GoalRepository) *SavingsService {
	return &SavingsService{
		goalRepo:  goalRepo,
		publisher: event.NoOpPublisher{},
		now:       time.Now,
	}
}

// SetEventPublisher sets the publisher for goal events
func (s *SavingsService) SetEventPublisher(publisher event.Publisher) {
	s.publisher = publisher
}

// SetGoal plans a fixed monthly saving towards target over months.
// A non-positive duration is rejected before the target is looked at.
func (s *SavingsService) SetGoal(target decimal.Decimal, months int) (*domain.SavingsGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := s.goalRepo.List()
	if err != nil {
		return nil, err
	}
	updated, err := analytics.SetSavingsGoal(goals, target, months)
	if err != nil {
		return nil, err
	}
	if !target.IsPositive() {
		return nil, domain.ErrInvalidTarget
	}

	goal := updated[len(updated)-1]
	goal.ID = uuid.New()
	goal.CreatedAt = s.now().UTC()
	if err := s.goalRepo.Append(goal); err != nil {
		log.Error().Err(err).Msg("Failed to save savings goal")
		return nil, err
	}

	s.publisher.Publish(event.GoalCreated(goal))
	log.Info().
		Str("goal_id", goal.ID.String()).
		Str("target", goal.Target.String()).
		Int("months", goal.MonthsRemaining).
		Msg("Savings goal set")
	return &goal, nil
}

// Goals returns every goal, oldest first
func (s *SavingsService) Goals() ([]domain.SavingsGoal, error) {
	return s.goalRepo.List()
}
