package member

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("member not found")

type Role string

const (
	RoleMember     Role = "Member"
	RoleExecutive  Role = "Executive"
	RoleSuperAdmin Role = "SuperAdmin"
	RoleAuditor    Role = "Auditor"
)

type MemberStatus string

const (
	StatusActive    MemberStatus = "Active"
	StatusInactive  MemberStatus = "Inactive"
	StatusSuspended MemberStatus = "Suspended"
	StatusExpelled  MemberStatus = "Expelled"
	StatusDeceased  MemberStatus = "Deceased"
)

// Member is the read model the loan core consumes from the member
// directory: identity, contact channels, standing and benefit
// qualification. Member CRUD itself lives outside this service.
type Member struct {
	ID             uint64       `gorm:"primaryKey;column:id" json:"-"`
	MemberNumber   string       `gorm:"size:10;uniqueIndex:ux_members_member_number" json:"member_number"` // OT-001
	FullName       string       `gorm:"size:100;not null" json:"full_name"`
	Email          string       `gorm:"size:100" json:"email,omitempty"`
	PhonePrimary   string       `gorm:"size:20" json:"phone_primary,omitempty"`
	PhoneSecondary string       `gorm:"size:20" json:"phone_secondary,omitempty"`
	Status         MemberStatus `gorm:"size:20;default:'Active'" json:"status"`
	Role           Role         `gorm:"size:20;default:'Member'" json:"role"`

	ConsecutiveMonthsPaid int  `gorm:"default:0" json:"consecutive_months_paid"`
	QualifiedForBenefits  bool `gorm:"default:false" json:"qualified_for_benefits"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string { return "members" }

func (m *Member) IsActive() bool { return m.Status == StatusActive }

// IsQualified reports whether the member may act as a guarantor: active and
// past the configured consecutive-contribution threshold, per the flag
// maintained by the contribution tracker.
func (m *Member) IsQualified() bool { return m.QualifiedForBenefits && m.IsActive() }

func (m *Member) IsExecutive() bool {
	return m.Role == RoleExecutive || m.Role == RoleSuperAdmin
}
