// Package access реализует политику доступа к фильмам по уровню подписки.
package access

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/movie-explorer/internal/models"
)

// TierResolver возвращает действующий уровень подписки пользователя.
type TierResolver interface {
	CurrentTier(ctx context.Context, userUID string) (models.PlanType, error)
}

// Service решает, видим ли фильм для конкретного запроса.
type Service struct {
	tiers TierResolver
}

// New создает новый экземпляр Service.
func New(tiers TierResolver) *Service {
	return &Service{tiers: tiers}
}

// CanView сообщает, доступен ли фильм пользователю userUID. Пустой userUID
// означает анонимный запрос. Фильмы без флага premium видны всем, включая
// анонимных; premium-фильмы — только пользователям с действующим premium.
// Роль пользователя на видимость не влияет: supervisor без premium
// premium-фильмов не видит.
func (s *Service) CanView(ctx context.Context, userUID string, movie *models.Movie) (bool, error) {
	const op = "access.CanView"

	if !movie.Premium {
		return true, nil
	}
	if userUID == "" {
		return false, nil
	}

	tier, err := s.tiers.CurrentTier(ctx, userUID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return tier == models.PlanPremium, nil
}

// FilterViewable отбирает из списка фильмы, доступные пользователю.
// Уровень подписки вычисляется один раз на вызов, а не на каждый фильм.
func (s *Service) FilterViewable(ctx context.Context, userUID string, movies []*models.Movie) ([]*models.Movie, error) {
	const op = "access.FilterViewable"

	tier := models.PlanFree
	if userUID != "" {
		var err error
		tier, err = s.tiers.CurrentTier(ctx, userUID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if tier == models.PlanPremium {
		return movies, nil
	}
	visible := make([]*models.Movie, 0, len(movies))
	for _, m := range movies {
		if !m.Premium {
			visible = append(visible, m)
		}
	}
	return visible, nil
}
