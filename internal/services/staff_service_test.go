package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gastropro/gastropro/internal/database/testutil"
	apperrors "github.com/gastropro/gastropro/pkg/errors"
)

func newTestStaffService(t *testing.T) *StaffService {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewStaffService(db)
	require.NoError(t, err)
	return svc
}

func TestStaffCRUD(t *testing.T) {
	svc := newTestStaffService(t)
	ctx := context.Background()

	member, err := svc.Create(ctx, StaffMemberInput{
		Name:     "Dana Rossi",
		Position: "chef",
		Email:    "Dana.Rossi@Example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "dana.rossi@example.com", member.Email, "emails are lower-cased")
	require.True(t, member.IsActive)

	loaded, err := svc.Get(ctx, member.ID)
	require.NoError(t, err)
	require.Equal(t, "Dana Rossi", loaded.Name)

	position := "head chef"
	updated, err := svc.Update(ctx, member.ID, StaffMemberUpdate{Position: &position})
	require.NoError(t, err)
	require.Equal(t, "head chef", updated.Position)

	require.NoError(t, svc.Delete(ctx, member.ID))
	require.True(t, errors.Is(svc.Delete(ctx, member.ID), apperrors.ErrNotFound))
}

func TestStaffEmailUniqueness(t *testing.T) {
	svc := newTestStaffService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, StaffMemberInput{Name: "Dana", Email: "dana@example.com"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, StaffMemberInput{Name: "Other Dana", Email: "DANA@example.com"})
	require.Error(t, err, "duplicate email is rejected case-insensitively")

	second, err := svc.Create(ctx, StaffMemberInput{Name: "Sam", Email: "sam@example.com"})
	require.NoError(t, err)

	taken := "dana@example.com"
	_, err = svc.Update(ctx, second.ID, StaffMemberUpdate{Email: &taken})
	require.Error(t, err, "updating onto a taken email is rejected")
}

func TestStaffListFilters(t *testing.T) {
	svc := newTestStaffService(t)
	ctx := context.Background()

	inactive := false
	_, err := svc.Create(ctx, StaffMemberInput{Name: "Ana", Position: "server", Email: "ana@example.com"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, StaffMemberInput{Name: "Ben", Position: "server", Email: "ben@example.com", IsActive: &inactive})
	require.NoError(t, err)
	_, err = svc.Create(ctx, StaffMemberInput{Name: "Caro", Position: "chef", Email: "caro@example.com"})
	require.NoError(t, err)

	servers, err := svc.List(ctx, ListStaffInput{Position: "server"})
	require.NoError(t, err)
	require.Len(t, servers, 2)

	active, err := svc.List(ctx, ListStaffInput{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 2)
}
