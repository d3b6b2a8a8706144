package mysql

import (
	"context"

	memberDomain "otsc-backend/internal/domain/member"

	"gorm.io/gorm"
)

type MemberRepository struct{ db *gorm.DB }

func NewMemberRepository(db *gorm.DB) *MemberRepository { return &MemberRepository{db: db} }

func (r *MemberRepository) GetByID(ctx context.Context, id uint64) (*memberDomain.Member, error) {
	var out memberDomain.Member
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, res.Error
}

func (r *MemberRepository) GetByMemberNumber(ctx context.Context, memberNumber string) (*memberDomain.Member, error) {
	var out memberDomain.Member
	res := r.db.WithContext(ctx).Where("member_number = ?", memberNumber).First(&out)
	return &out, res.Error
}

func (r *MemberRepository) ListExecutives(ctx context.Context) ([]memberDomain.Member, error) {
	var out []memberDomain.Member
	res := r.db.WithContext(ctx).
		Where("role IN ?", []memberDomain.Role{memberDomain.RoleExecutive, memberDomain.RoleSuperAdmin}).
		Order("member_number").
		Find(&out)
	return out, res.Error
}
