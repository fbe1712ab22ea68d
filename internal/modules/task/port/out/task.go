package out

import (
	"context"

	"psched/internal/modules/task/domain"
)

// API is the backend task resource.
type API interface {
	List(ctx context.Context, userID int) ([]domain.Task, error)
	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	Update(ctx context.Context, id int, task domain.Task) (domain.Task, error)
	Delete(ctx context.Context, id int) error
}

// Identity resolves the logged-in user the cache scopes its requests to.
type Identity interface {
	CurrentUserID(ctx context.Context) (int, error)
}
