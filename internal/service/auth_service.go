package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/netly-app/netly/internal/mail"
	"github.com/netly-app/netly/internal/model"
	appErr "github.com/netly-app/netly/internal/pkg/errors"
	"github.com/netly-app/netly/internal/pkg/jwt"
	"github.com/netly-app/netly/internal/pkg/password"
	"github.com/netly-app/netly/internal/pkg/timeutil"
	"github.com/netly-app/netly/internal/repo"
)

// Mailer is the outbound mail surface the services use. Implemented by
// mail.Dispatcher.
type Mailer interface {
	Enqueue(ctx context.Context, msg *mail.Message) error
}

type AuthService struct {
	users     *repo.UserRepo
	otp       *OTPService
	mailer    Mailer
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewAuthService(users *repo.UserRepo, otp *OTPService, mailer Mailer,
	jwtSecret []byte, jwtTTL time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		otp:       otp,
		mailer:    mailer,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
	}
}

type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, name, email, plainPassword string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if name == "" || email == "" || len(plainPassword) < 8 {
		return nil, fmt.Errorf("%w: name, email and a password of at least 8 characters are required", appErr.ErrInvalid)
	}
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	user := &model.User{
		ID:           newID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Ctime:        now,
		Mtime:        now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if appErr.IsConflict(err) {
			return nil, fmt.Errorf("%w: email already registered", appErr.ErrConflict)
		}
		return nil, err
	}
	logutil.GetLogger(ctx).Info("user registered", zap.String("user_id", user.ID))
	return s.issueToken(user)
}

func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, appErr.ErrUnauthorized
		}
		return nil, err
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return nil, appErr.ErrUnauthorized
	}
	return s.issueToken(user)
}

// RequestLoginOTP issues a login code and queues the delivery email. The
// lookup failure for an unknown email is reported to the caller; the route
// is rate limited instead of hiding account existence.
func (s *AuthService) RequestLoginOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.SendOTP(ctx, user.Name, email, "log in to your account")
}

// SendOTP issues a code for the address and queues the notification email.
// Used by login, email changes and secondary email verification.
func (s *AuthService) SendOTP(ctx context.Context, name, email, purpose string) error {
	code, err := s.otp.Issue(ctx, email)
	if err != nil {
		return err
	}
	body, err := mail.RenderOTPEmail(mail.OTPEmailData{
		Name:              name,
		Code:              code,
		Purpose:           purpose,
		ExpirationMinutes: int(s.otp.TTL().Minutes()),
	})
	if err != nil {
		return err
	}
	return s.mailer.Enqueue(ctx, &mail.Message{
		To:      []string{email},
		Subject: "Your Netly verification code",
		HTML:    body,
	})
}

func (s *AuthService) LoginWithOTP(ctx context.Context, email, code string) (*AuthResult, error) {
	email = normalizeEmail(email)
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, appErr.ErrUnauthorized
		}
		return nil, err
	}
	if err := s.otp.Verify(ctx, email, code); err != nil {
		return nil, err
	}
	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *model.User) (*AuthResult, error) {
	token, err := jwt.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
