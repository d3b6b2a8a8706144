package member

import "context"

type Repository interface {
	GetByID(ctx context.Context, id uint64) (*Member, error)
	GetByMemberNumber(ctx context.Context, memberNumber string) (*Member, error)
	// ListExecutives returns all Executive and SuperAdmin members, the
	// audience for due-date broadcasts.
	ListExecutives(ctx context.Context) ([]Member, error)
}
