package consultant

import "context"

type Repository interface {
	Create(ctx context.Context, consultant *Consultant) error
	GetByID(ctx context.Context, id uint) (*Consultant, error)
	GetByEmail(ctx context.Context, email string) (*Consultant, error)
	Update(ctx context.Context, consultant *Consultant) error
	List(ctx context.Context, filter Filter) ([]*Consultant, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type Filter struct {
	ParlourID *uint
	Role      *string
	State     *string
	Page      int
	PageSize  int
}
