package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/netly-app/netly/internal/model"
	appErr "github.com/netly-app/netly/internal/pkg/errors"
)

func TestSplitEmails(t *testing.T) {
	require.Nil(t, splitEmails(""))
	require.Equal(t, []string{"a@x.com"}, splitEmails("a@x.com"))
	require.Equal(t, []string{"a@x.com", "b@y.com"}, splitEmails("a@x.com,b@y.com"))
}

func TestContainsEmail(t *testing.T) {
	emails := []string{"a@x.com", "b@y.com"}
	require.True(t, containsEmail(emails, "a@x.com"))
	require.False(t, containsEmail(emails, "c@z.com"))
	require.False(t, containsEmail(nil, "a@x.com"))
}

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "a@x.com", normalizeEmail("  A@X.com "))
	require.Equal(t, "", normalizeEmail("   "))
}

func TestToProfile(t *testing.T) {
	user := &model.User{
		ID:              "u1",
		Name:            "Asha",
		Email:           "a@x.com",
		SecondaryEmails: "b@y.com,c@z.com",
	}
	profile := toProfile(user)
	require.Equal(t, "u1", profile.ID)
	require.Equal(t, []string{"b@y.com", "c@z.com"}, profile.SecondaryEmails)

	user.SecondaryEmails = ""
	require.Empty(t, toProfile(user).SecondaryEmails)
}

type fakeUserStore struct {
	byID    map[string]*model.User
	byEmail map[string]*model.User
}

func newFakeUserStore(users ...*model.User) *fakeUserStore {
	s := &fakeUserStore{
		byID:    make(map[string]*model.User),
		byEmail: make(map[string]*model.User),
	}
	for _, user := range users {
		s.byID[user.ID] = user
		s.byEmail[user.Email] = user
	}
	return s
}

func (s *fakeUserStore) GetByID(_ context.Context, userID string) (*model.User, error) {
	if user, ok := s.byID[userID]; ok {
		return user, nil
	}
	return nil, appErr.ErrNotFound
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, appErr.ErrNotFound
}

func (s *fakeUserStore) Update(_ context.Context, user *model.User) error {
	s.byID[user.ID] = user
	return nil
}

func TestRequestEmailChangeRejectsRegisteredEmail(t *testing.T) {
	store := newFakeUserStore(
		&model.User{ID: "u1", Name: "Asha", Email: "a@x.com"},
		&model.User{ID: "u2", Name: "Ravi", Email: "r@x.com"},
	)
	svc := NewUserService(store, nil, nil)

	err := svc.RequestEmailChange(context.Background(), "u1", "r@x.com")
	require.ErrorIs(t, err, appErr.ErrConflict)
}

func TestRequestEmailChangeRejectsOwnSecondaryEmail(t *testing.T) {
	store := newFakeUserStore(
		&model.User{ID: "u1", Name: "Asha", Email: "a@x.com", SecondaryEmails: "s@x.com"},
	)
	svc := NewUserService(store, nil, nil)

	err := svc.RequestEmailChange(context.Background(), "u1", "s@x.com")
	require.ErrorIs(t, err, appErr.ErrConflict)
}

func TestUpdateBasicInfoRejectsTakenEmailBeforeCodeCheck(t *testing.T) {
	store := newFakeUserStore(
		&model.User{ID: "u1", Name: "Asha", Email: "a@x.com", SecondaryEmails: "s@x.com"},
		&model.User{ID: "u2", Name: "Ravi", Email: "r@x.com"},
	)
	otp, _ := newTestOTPService(t)
	svc := NewUserService(store, otp, nil)
	ctx := context.Background()

	// Another account's primary email fails even with a valid-looking code.
	_, err := svc.UpdateBasicInfo(ctx, "u1", "", "r@x.com", "123456")
	require.ErrorIs(t, err, appErr.ErrConflict)

	// Promoting one's own secondary email is rejected, not duplicated.
	_, err = svc.UpdateBasicInfo(ctx, "u1", "", "s@x.com", "123456")
	require.ErrorIs(t, err, appErr.ErrConflict)

	user, err := store.GetByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", user.Email)
	require.Equal(t, "s@x.com", user.SecondaryEmails)
}

func TestUpdateBasicInfoChangesEmailWithCode(t *testing.T) {
	store := newFakeUserStore(
		&model.User{ID: "u1", Name: "Asha", Email: "a@x.com"},
	)
	otp, _ := newTestOTPService(t)
	svc := NewUserService(store, otp, nil)
	ctx := context.Background()

	_, err := svc.UpdateBasicInfo(ctx, "u1", "", "new@x.com", "")
	require.ErrorIs(t, err, appErr.ErrOTPRequired)

	code, err := otp.Issue(ctx, "new@x.com")
	require.NoError(t, err)
	profile, err := svc.UpdateBasicInfo(ctx, "u1", "", "new@x.com", code)
	require.NoError(t, err)
	require.Equal(t, "new@x.com", profile.Email)
}
