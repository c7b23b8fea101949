package centres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-ActionCentreService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-ActionCentreService/internal/service/centres/models"
)

const (
	// DefaultSearchLimit количество подсказок, если лимит не указан
	DefaultSearchLimit uint64 = 10
	// MaxSearchLimit верхняя граница лимита подсказок
	MaxSearchLimit uint64 = 50
	// MaxTermLength максимальная длина поисковой строки
	MaxTermLength = 100
)

// Service сервис для работы с центрами и поиском по каталогу
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса центров
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// List получает центры, опционально только одного вида
func (s *Service) List(ctx context.Context, req *models.ListCentresRequest) (*models.CentreListResponse, error) {
	s.logger.Info("List: fetching centres, kind=%q", req.Kind)

	if req.Kind != "" && req.Kind != domain.CentreKindAction && req.Kind != domain.CentreKindClientSupport {
		s.logger.Warn("List: invalid kind=%q", req.Kind)
		return nil, ErrInvalidKind
	}

	centres, err := s.catalogRepo.ListCentres(ctx, req.Kind)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d centres", len(centres))
	return models.FromDomainCentreList(centres), nil
}

// GetByID получает центр по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.CentreResponse, error) {
	s.logger.Info("GetByID: fetching centre id=%s", id)

	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: centre id is required", ErrInvalidInput)
	}

	centre, err := s.catalogRepo.GetCentre(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrCentreNotFound) {
			s.logger.Warn("GetByID: centre id=%s not found", id)
			return nil, ErrCentreNotFound
		}
		s.logger.Error("GetByID: repository error for centre id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCentre(centre), nil
}

// Search возвращает подсказки по центрам или процедурам.
// Пустая строка поиска даёт пустой список без обращения к БД.
func (s *Service) Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResponse, error) {
	term := strings.TrimSpace(req.Term)
	s.logger.Info("Search: type=%s, term=%q", req.Type, term)

	if req.Type != models.SearchTypeCentre && req.Type != models.SearchTypeProcedure {
		s.logger.Warn("Search: invalid type=%q", req.Type)
		return nil, ErrInvalidSearchType
	}
	if len(term) > MaxTermLength {
		return nil, fmt.Errorf("%w: search term is longer than %d characters", ErrInvalidInput, MaxTermLength)
	}

	resp := &models.SearchResponse{
		Type:        req.Type,
		Term:        term,
		Suggestions: []models.SuggestionResponse{},
	}
	if term == "" {
		return resp, nil
	}

	limit := req.Limit
	if limit == 0 {
		limit = DefaultSearchLimit
	}
	limit = min(limit, MaxSearchLimit)

	switch req.Type {
	case models.SearchTypeCentre:
		centres, err := s.catalogRepo.SearchCentres(ctx, term, limit)
		if err != nil {
			s.logger.Error("Search: failed to search centres: %v", err)
			return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
		}
		resp.Suggestions = models.CentreSuggestions(centres)

	case models.SearchTypeProcedure:
		items, err := s.catalogRepo.SearchProcedures(ctx, term, limit)
		if err != nil {
			s.logger.Error("Search: failed to search procedures: %v", err)
			return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
		}
		resp.Suggestions = models.ProcedureSuggestions(items)
	}

	s.logger.Info("Search: found %d suggestions", len(resp.Suggestions))
	return resp, nil
}
