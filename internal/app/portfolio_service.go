package app

import (
	"context"
	"strings"

	"portfolio-backend/internal/model"
	"portfolio-backend/internal/repository"
)

const (
	ListModeAll       = "all"
	ListModeFavorites = "favorites"

	defaultWorkTitle = "Untitled"
)

// WorkListCache holds the unannotated full listing. The favorite annotation
// is computed per viewer on every request, so toggles never invalidate it;
// only creating or deleting a work does.
type WorkListCache interface {
	GetAll(ctx context.Context) ([]model.Work, bool, error)
	SetAll(ctx context.Context, works []model.Work) error
	Invalidate(ctx context.Context) error
}

type PortfolioService struct {
	workRepo     *repository.WorkRepository
	favoriteRepo *repository.FavoriteRepository
	cache        WorkListCache
	publisher    ActivityPublisher
}

type CreateWorkInput struct {
	UserID      uint
	Title       string
	Description string
	ImageURL    string
}

func NewPortfolioService(
	workRepo *repository.WorkRepository,
	favoriteRepo *repository.FavoriteRepository,
	cache WorkListCache,
	publisher ActivityPublisher,
) *PortfolioService {
	return &PortfolioService{
		workRepo:     workRepo,
		favoriteRepo: favoriteRepo,
		cache:        cache,
		publisher:    publisher,
	}
}

func (s *PortfolioService) ListWorks(viewerID uint, mode string) ([]model.AnnotatedWork, error) {
	if mode == ListModeFavorites {
		if viewerID == 0 {
			return nil, ErrInvalidInput
		}
		works, err := s.workRepo.ListFavoritedBy(viewerID)
		if err != nil {
			return nil, err
		}
		annotated := make([]model.AnnotatedWork, 0, len(works))
		for _, w := range works {
			annotated = append(annotated, model.AnnotatedWork{Work: w, IsFavorite: true})
		}
		return annotated, nil
	}

	works, err := s.loadAllWorks()
	if err != nil {
		return nil, err
	}

	var favorited map[uint]struct{}
	if viewerID != 0 {
		favorited, err = s.favoriteRepo.WorkIDSetByUser(viewerID)
		if err != nil {
			return nil, err
		}
	}

	annotated := make([]model.AnnotatedWork, 0, len(works))
	for _, w := range works {
		_, isFavorite := favorited[w.ID]
		annotated = append(annotated, model.AnnotatedWork{Work: w, IsFavorite: isFavorite})
	}
	return annotated, nil
}

func (s *PortfolioService) CreateWork(input CreateWorkInput) (*model.Work, error) {
	imageURL := strings.TrimSpace(input.ImageURL)
	if imageURL == "" {
		return nil, ErrInvalidInput
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = defaultWorkTitle
	}

	work := &model.Work{
		UserID:      input.UserID,
		Title:       title,
		Description: input.Description,
		ImageURL:    imageURL,
	}
	if err := s.workRepo.Create(work); err != nil {
		return nil, err
	}

	s.invalidateCache()
	s.publish(model.ActivityEvent{Type: model.ActivityWorkCreated, UserID: work.UserID, WorkID: work.ID})
	return work, nil
}

// DeleteWork is idempotent: deleting an absent work leaves the store
// unchanged and still succeeds.
func (s *PortfolioService) DeleteWork(workID uint) error {
	if workID == 0 {
		return ErrInvalidInput
	}
	if err := s.workRepo.DeleteWithFavorites(workID); err != nil {
		return err
	}

	s.invalidateCache()
	s.publish(model.ActivityEvent{Type: model.ActivityWorkDeleted, WorkID: workID})
	return nil
}

func (s *PortfolioService) ToggleFavorite(userID, workID uint) (bool, error) {
	if userID == 0 || workID == 0 {
		return false, ErrInvalidInput
	}

	nowFavorite, err := s.favoriteRepo.Toggle(userID, workID)
	if err != nil {
		return false, err
	}

	eventType := model.ActivityFavoriteRemoved
	if nowFavorite {
		eventType = model.ActivityFavoriteAdded
	}
	s.publish(model.ActivityEvent{Type: eventType, UserID: userID, WorkID: workID})
	return nowFavorite, nil
}

func (s *PortfolioService) loadAllWorks() ([]model.Work, error) {
	ctx := context.Background()
	if s.cache != nil {
		if cached, hit, err := s.cache.GetAll(ctx); err == nil && hit {
			return cached, nil
		}
	}

	works, err := s.workRepo.ListAll()
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetAll(ctx, works)
	}
	return works, nil
}

func (s *PortfolioService) invalidateCache() {
	if s.cache == nil {
		return
	}
	_ = s.cache.Invalidate(context.Background())
}

func (s *PortfolioService) publish(event model.ActivityEvent) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(context.Background(), event)
}
