package entitlement

import (
	"context"
	"fmt"

	"github.com/voidlabs/void/internal/shared/logger"
)

// Service implements Gate on top of the repository.
type Service struct {
	repo   Repository
	logger logger.Interface
}

// NewService creates the entitlement gate.
func NewService(repo Repository, logger logger.Interface) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ResolveLongLetterLimit(ctx context.Context, sessionID string) (int, error) {
	limit, err := s.repo.HighestLongLetterLimit(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve long letter limit: %w", err)
	}
	if limit < DefaultMaxContentChars {
		return DefaultMaxContentChars, nil
	}
	return limit, nil
}

func (s *Service) HasActiveEntitlement(ctx context.Context, sessionID string, feature FeatureType) (bool, error) {
	if !feature.IsValid() {
		return false, fmt.Errorf("invalid feature type: %s", feature)
	}
	active, err := s.repo.HasActive(ctx, sessionID, feature)
	if err != nil {
		return false, fmt.Errorf("failed to check entitlement: %w", err)
	}
	return active, nil
}
