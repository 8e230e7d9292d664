package travels

import (
	"context"
	"time"

	"github.com/tdea-viajes/travelbooking/internal/domain"
	"github.com/tdea-viajes/travelbooking/internal/repository"
)

type TravelUseCase interface {
	List(ctx context.Context) ([]domain.Travel, error)
	GetByID(ctx context.Context, id int64) (*domain.Travel, error)
	Create(ctx context.Context, travel *domain.Travel) error
	Update(ctx context.Context, id int64, data domain.Travel) (*domain.Travel, error)
	Delete(ctx context.Context, id int64) error
	Filter(ctx context.Context, filter domain.TravelFilter) ([]domain.Travel, error)
}

type Cache interface {
	GetTravels(ctx context.Context) ([]domain.Travel, error)
	SetTravels(ctx context.Context, travels []domain.Travel) error
	InvalidateTravels(ctx context.Context) error
}

type TravelService struct {
	repo  repository.TravelRepository
	cache Cache
}

func NewTravelService(repo repository.TravelRepository, cache Cache) *TravelService {
	return &TravelService{repo: repo, cache: cache}
}

func (s *TravelService) List(ctx context.Context) ([]domain.Travel, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetTravels(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	travels, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetTravels(ctx, travels)
	}
	return travels, nil
}

func (s *TravelService) GetByID(ctx context.Context, id int64) (*domain.Travel, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TravelService) Create(ctx context.Context, travel *domain.Travel) error {
	if err := s.repo.Create(ctx, travel); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *TravelService) Update(ctx context.Context, id int64, data domain.Travel) (*domain.Travel, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Destination = data.Destination
	existing.DepartureDate = data.DepartureDate
	existing.ReturnDate = data.ReturnDate
	existing.Price = data.Price
	existing.Itinerary = data.Itinerary

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return existing, nil
}

func (s *TravelService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *TravelService) Filter(ctx context.Context, filter domain.TravelFilter) ([]domain.Travel, error) {
	travels, err := s.repo.Filter(ctx, filter)
	if err != nil {
		return nil, err
	}
	if filter.Status == "" {
		return travels, nil
	}

	// Travels have no stored status; it is derived from the dates.
	now := time.Now()
	filtered := make([]domain.Travel, 0, len(travels))
	for _, t := range travels {
		if t.ScheduleStatus(now) == filter.Status {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func (s *TravelService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateTravels(ctx)
	}
}

var _ TravelUseCase = (*TravelService)(nil)
