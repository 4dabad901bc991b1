package settings

import (
	"context"

	"researchhub/internal/domain"
)

type SettingRepository interface {
	GetAll(ctx context.Context) ([]domain.SiteSetting, error)
	Upsert(ctx context.Context, key, value string) error
}

type Service struct {
	settings SettingRepository
}

func NewService(settings SettingRepository) *Service {
	return &Service{settings: settings}
}

// GetAll returns settings as a flat key→value map for the marketing
// pages.
func (s *Service) GetAll(ctx context.Context) (map[string]string, error) {
	all, err := s.settings.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(all))
	for _, setting := range all {
		out[setting.Key] = setting.Value
	}
	return out, nil
}

// Update upserts every provided key.
func (s *Service) Update(ctx context.Context, values map[string]string) error {
	for key, value := range values {
		if err := s.settings.Upsert(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}
