package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/netly-app/netly/internal/model"
	appErr "github.com/netly-app/netly/internal/pkg/errors"
	"github.com/netly-app/netly/internal/pkg/timeutil"
)

const maxSecondaryEmails = 5

// userStore is the slice of the user repo this service needs. Satisfied by
// repo.UserRepo.
type userStore interface {
	GetByID(ctx context.Context, userID string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

type UserService struct {
	users userStore
	otp   *OTPService
	auth  *AuthService
}

func NewUserService(users userStore, otp *OTPService, auth *AuthService) *UserService {
	return &UserService{users: users, otp: otp, auth: auth}
}

type Profile struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	SecondaryEmails []string `json:"secondary_emails"`
	Ctime           int64    `json:"ctime"`
	Mtime           int64    `json:"mtime"`
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfile(user), nil
}

// RequestEmailChange issues an OTP to the proposed new primary address.
// Proving control of the new inbox is what authorizes the change.
func (s *UserService) RequestEmailChange(ctx context.Context, userID, newEmail string) error {
	newEmail = normalizeEmail(newEmail)
	if newEmail == "" {
		return fmt.Errorf("%w: email is required", appErr.ErrInvalid)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if newEmail == user.Email {
		return fmt.Errorf("%w: email is unchanged", appErr.ErrInvalid)
	}
	if err := s.checkEmailFree(ctx, user, newEmail); err != nil {
		return err
	}
	return s.auth.SendOTP(ctx, user.Name, newEmail, "change your primary email")
}

// checkEmailFree rejects an address that is already someone's primary
// email or one of this user's secondary emails.
func (s *UserService) checkEmailFree(ctx context.Context, user *model.User, email string) error {
	if containsEmail(splitEmails(user.SecondaryEmails), email) {
		return fmt.Errorf("%w: email already on the account", appErr.ErrConflict)
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return fmt.Errorf("%w: email already registered", appErr.ErrConflict)
	} else if !appErr.IsNotFound(err) {
		return err
	}
	return nil
}

// UpdateBasicInfo changes name freely. An email change additionally
// requires the code that was sent to the new address.
func (s *UserService) UpdateBasicInfo(ctx context.Context, userID, name, email, otpCode string) (*Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		user.Name = name
	}
	email = normalizeEmail(email)
	if email != "" && email != user.Email {
		if err := s.checkEmailFree(ctx, user, email); err != nil {
			return nil, err
		}
		if otpCode == "" {
			return nil, appErr.ErrOTPRequired
		}
		if err := s.otp.Verify(ctx, email, otpCode); err != nil {
			return nil, err
		}
		user.Email = email
	}
	user.Mtime = timeutil.NowUnix()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).Info("profile updated", zap.String("user_id", userID))
	return toProfile(user), nil
}

// RequestSecondaryEmail issues an OTP to the address being added. Only one
// secondary email can be added per verification round trip.
func (s *UserService) RequestSecondaryEmail(ctx context.Context, userID, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", appErr.ErrInvalid)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if email == user.Email || containsEmail(splitEmails(user.SecondaryEmails), email) {
		return fmt.Errorf("%w: email already on the account", appErr.ErrConflict)
	}
	if len(splitEmails(user.SecondaryEmails)) >= maxSecondaryEmails {
		return fmt.Errorf("%w: at most %d secondary emails", appErr.ErrInvalid, maxSecondaryEmails)
	}
	return s.auth.SendOTP(ctx, user.Name, email, "add this address to your account")
}

// ConfirmSecondaryEmail verifies the code that was sent to the new address
// and appends it to the account.
func (s *UserService) ConfirmSecondaryEmail(ctx context.Context, userID, email, otpCode string) (*Profile, error) {
	email = normalizeEmail(email)
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if email == user.Email || containsEmail(splitEmails(user.SecondaryEmails), email) {
		return nil, fmt.Errorf("%w: email already on the account", appErr.ErrConflict)
	}
	if err := s.otp.Verify(ctx, email, otpCode); err != nil {
		return nil, err
	}
	emails := append(splitEmails(user.SecondaryEmails), email)
	user.SecondaryEmails = strings.Join(emails, ",")
	user.Mtime = timeutil.NowUnix()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return toProfile(user), nil
}

func (s *UserService) RemoveSecondaryEmail(ctx context.Context, userID, email string) (*Profile, error) {
	email = normalizeEmail(email)
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	emails := splitEmails(user.SecondaryEmails)
	if !containsEmail(emails, email) {
		return nil, appErr.ErrNotFound
	}
	kept := make([]string, 0, len(emails))
	for _, e := range emails {
		if e != email {
			kept = append(kept, e)
		}
	}
	user.SecondaryEmails = strings.Join(kept, ",")
	user.Mtime = timeutil.NowUnix()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return toProfile(user), nil
}

func toProfile(user *model.User) *Profile {
	return &Profile{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		SecondaryEmails: splitEmails(user.SecondaryEmails),
		Ctime:           user.Ctime,
		Mtime:           user.Mtime,
	}
}

func splitEmails(packed string) []string {
	if packed == "" {
		return nil
	}
	return strings.Split(packed, ",")
}

func containsEmail(emails []string, email string) bool {
	for _, e := range emails {
		if e == email {
			return true
		}
	}
	return false
}
