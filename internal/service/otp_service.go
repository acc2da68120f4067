package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	appErr "github.com/netly-app/netly/internal/pkg/errors"
)

const otpKeyPrefix = "otp:"

// KV is the TTL key-value surface the OTP service needs from redis.
type KV interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	GetDel(ctx context.Context, key string) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// OTPService issues and verifies short-lived numeric codes keyed by email.
// At most one code is live per email; reissuing overwrites the previous one.
type OTPService struct {
	kv  KV
	ttl time.Duration
}

func NewOTPService(kv KV, ttl time.Duration) *OTPService {
	return &OTPService{kv: kv, ttl: ttl}
}

func (s *OTPService) TTL() time.Duration {
	return s.ttl
}

// Issue generates a fresh six-digit code for the email and stores it under
// the service TTL. Any previously issued code for the same email stops
// working immediately.
func (s *OTPService) Issue(ctx context.Context, email string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	if err := s.kv.Set(ctx, otpKeyPrefix+email, code, s.ttl); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}
	logutil.GetLogger(ctx).Debug("otp issued", zap.String("email", email))
	return code, nil
}

// Verify consumes the code on success. A wrong code leaves the stored code
// intact. The stored value is removed atomically with GETDEL and compared
// again afterwards, so two concurrent verifiers with the right code cannot
// both succeed.
func (s *OTPService) Verify(ctx context.Context, email, code string) error {
	key := otpKeyPrefix + email
	stored, err := s.kv.Get(ctx, key)
	if err != nil {
		if appErr.IsNotFound(err) {
			return appErr.ErrOTPInvalid
		}
		return err
	}
	if stored != code {
		return appErr.ErrOTPInvalid
	}
	consumed, err := s.kv.GetDel(ctx, key)
	if err != nil {
		if appErr.IsNotFound(err) {
			return appErr.ErrOTPInvalid
		}
		return err
	}
	if consumed != code {
		return appErr.ErrOTPInvalid
	}
	return nil
}

// Pending reports whether a live code exists for the email.
func (s *OTPService) Pending(ctx context.Context, email string) (bool, error) {
	return s.kv.Exists(ctx, otpKeyPrefix+email)
}

// generateCode draws a uniform six-digit code from [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
