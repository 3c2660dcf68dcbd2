package plan

import "context"

type Repository interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id uint) (*Plan, error)
	Update(ctx context.Context, plan *Plan) error
	List(ctx context.Context, filter Filter) ([]*Plan, int64, error)
	ExistsByName(ctx context.Context, parlourID uint, name string) (bool, error)
}

type Filter struct {
	ParlourID uint
	State     *string
	Page      int
	PageSize  int
}
