package notification

import "context"

type Repository interface {
	Create(ctx context.Context, notification *Notification) error
	List(ctx context.Context, filter Filter) ([]*Notification, int64, error)
}

type Filter struct {
	ParlourID uint
	Type      *string
	Status    *string
	Page      int
	PageSize  int
}
