package parlour

import "context"

type Repository interface {
	Create(ctx context.Context, parlour *Parlour) error
	GetByID(ctx context.Context, id uint) (*Parlour, error)
	Update(ctx context.Context, parlour *Parlour) error
	List(ctx context.Context, page, pageSize int) ([]*Parlour, int64, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}
