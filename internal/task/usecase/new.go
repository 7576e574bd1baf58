package usecase

import (
	"sync"

	"realtime-task-manager/internal/task/cache"
	"realtime-task-manager/internal/task/repository"
	pkgLog "realtime-task-manager/pkg/log"
)

type implUseCase struct {
	l      pkgLog.Logger
	repo   repository.TaskRepository
	images repository.ImageRepository
	feed   repository.ChangeFeed
	store  *cache.Store

	mu      sync.Mutex
	mounted bool
	sub     repository.Subscription
}

// New creates a new task UseCase instance with an empty local mirror.
func New(
	l pkgLog.Logger,
	repo repository.TaskRepository,
	images repository.ImageRepository,
	feed repository.ChangeFeed,
) *implUseCase {
	return &implUseCase{
		l:      l,
		repo:   repo,
		images: images,
		feed:   feed,
		store:  cache.NewStore(),
	}
}
