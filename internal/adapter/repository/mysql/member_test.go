package mysql

import (
	"context"
	"errors"
	"testing"

	domain "otsc-backend/internal/domain/member"

	"gorm.io/gorm"
)

func seedMembers(t *testing.T, db *gorm.DB) {
	t.Helper()
	rows := []memberSQLite{
		{MemberNumber: "OT-001", FullName: "Alice", Status: "Active", Role: "Member", QualifiedForBenefits: true},
		{MemberNumber: "OT-002", FullName: "Chair", Status: "Active", Role: "Executive"},
		{MemberNumber: "OT-003", FullName: "Admin", Status: "Active", Role: "SuperAdmin"},
		{MemberNumber: "OT-004", FullName: "Auditor", Status: "Active", Role: "Auditor"},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatal(err)
		}
	}
}

func TestMemberGetByID(t *testing.T) {
	db := openTestDB(t)
	seedMembers(t, db)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	got, err := repo.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.MemberNumber != "OT-001" || !got.IsQualified() {
		t.Errorf("unexpected member: %+v", got)
	}

	if _, err := repo.GetByID(ctx, 99); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemberGetByMemberNumber(t *testing.T) {
	db := openTestDB(t)
	seedMembers(t, db)
	repo := NewMemberRepository(db)

	got, err := repo.GetByMemberNumber(context.Background(), "OT-002")
	if err != nil {
		t.Fatalf("GetByMemberNumber: %v", err)
	}
	if got.FullName != "Chair" || !got.IsExecutive() {
		t.Errorf("unexpected member: %+v", got)
	}
}

func TestListExecutives(t *testing.T) {
	db := openTestDB(t)
	seedMembers(t, db)
	repo := NewMemberRepository(db)

	got, err := repo.ListExecutives(context.Background())
	if err != nil {
		t.Fatalf("ListExecutives: %v", err)
	}
	// Executive and SuperAdmin only; plain members and auditors excluded
	if len(got) != 2 {
		t.Fatalf("executives = %+v", got)
	}
	if got[0].MemberNumber != "OT-002" || got[1].MemberNumber != "OT-003" {
		t.Errorf("order = %s, %s", got[0].MemberNumber, got[1].MemberNumber)
	}
	for _, m := range got {
		if m.Role != domain.RoleExecutive && m.Role != domain.RoleSuperAdmin {
			t.Errorf("unexpected role %s", m.Role)
		}
	}
}
