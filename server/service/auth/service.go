// Package auth implements email OTP authentication. An employee asks
// for a one-time code, receives it by email, and exchanges it for a
// signed session token. OTP state is short-lived and kept in memory.
package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/orgai/hr-assistant/store"
	"github.com/orgai/hr-assistant/store/cache"
)

var (
	// ErrUnknownEmail is returned when the email is not in the employee directory.
	ErrUnknownEmail = errors.New("Invalid Email ID")
	// ErrNoOTP is returned when verification is attempted without a pending OTP.
	ErrNoOTP = errors.New("No OTP found. Please request a new OTP")
	// ErrOTPExpired is returned when the pending OTP has passed its expiry.
	ErrOTPExpired = errors.New("OTP has expired. Please request a new OTP")
	// ErrTooManyAttempts is returned after the attempt cap is exhausted.
	ErrTooManyAttempts = errors.New("Too many failed attempts. Please request a new OTP")
	// ErrInvalidOTP is returned when the submitted code does not match.
	ErrInvalidOTP = errors.New("Invalid OTP")
)

const (
	otpTTL         = 5 * time.Minute
	maxOTPAttempts = 3
	otpDigits      = 1000000
)

// Sender delivers a one-time code to an employee.
type Sender interface {
	SendOTP(ctx context.Context, to, code string) error
}

// Directory resolves employees by email.
type Directory interface {
	GetEmployeeByEmail(ctx context.Context, email string) (*store.Employee, error)
}

type otpState struct {
	hash      []byte
	expiresAt time.Time
	attempts  int
}

// Service issues and verifies one-time codes against the employee
// directory and mints session tokens on success.
type Service struct {
	directory Directory
	sender    Sender
	secret    string
	orgName   string

	// mu serializes verify attempts so the attempt counter cannot be
	// raced past the cap.
	mu      sync.Mutex
	pending *cache.Cache
}

// NewService creates an auth service. sender may be nil, in which case
// codes are logged instead of emailed (dev mode only).
func NewService(directory Directory, sender Sender, secret, orgName string) *Service {
	return &Service{
		directory: directory,
		sender:    sender,
		secret:    secret,
		orgName:   orgName,
		pending: cache.New(cache.Config{
			DefaultTTL:      otpTTL,
			CleanupInterval: time.Minute,
			MaxItems:        10000,
		}),
	}
}

// Close releases the OTP cache.
func (s *Service) Close() {
	s.pending.Close()
}

// SendOTP generates a fresh code for the employee with the given email
// and delivers it. A new request replaces any pending code.
func (s *Service) SendOTP(ctx context.Context, email string) (*store.Employee, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	employee, err := s.directory.GetEmployeeByEmail(ctx, email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up employee")
	}
	if employee == nil {
		return nil, ErrUnknownEmail
	}

	code, err := generateOTP()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate OTP")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash OTP")
	}

	s.mu.Lock()
	s.pending.SetWithTTL(ctx, otpKey(email), &otpState{
		hash:      hash,
		expiresAt: time.Now().Add(otpTTL),
	}, otpTTL)
	s.mu.Unlock()

	if s.sender == nil {
		slog.WarnContext(ctx, "no email sender configured, logging OTP", slog.String("email", email), slog.String("otp", code))
		return employee, nil
	}
	if err := s.sender.SendOTP(ctx, email, code); err != nil {
		s.pending.Delete(ctx, otpKey(email))
		return nil, errors.Wrap(err, "failed to send OTP email")
	}
	slog.InfoContext(ctx, "otp sent", slog.String("email", email))
	return employee, nil
}

// VerifyOTP checks the submitted code. On success the pending state is
// cleared and a signed session token is returned along with the
// employee record.
func (s *Service) VerifyOTP(ctx context.Context, email, code string) (string, *store.Employee, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	code = strings.TrimSpace(code)

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.pending.Get(ctx, otpKey(email))
	if !ok {
		return "", nil, ErrNoOTP
	}
	state, ok := raw.(*otpState)
	if !ok {
		return "", nil, ErrNoOTP
	}
	if time.Now().After(state.expiresAt) {
		s.pending.Delete(ctx, otpKey(email))
		return "", nil, ErrOTPExpired
	}

	if bcrypt.CompareHashAndPassword(state.hash, []byte(code)) != nil {
		state.attempts++
		if state.attempts >= maxOTPAttempts {
			s.pending.Delete(ctx, otpKey(email))
			return "", nil, ErrTooManyAttempts
		}
		return "", nil, ErrInvalidOTP
	}

	s.pending.Delete(ctx, otpKey(email))

	employee, err := s.directory.GetEmployeeByEmail(ctx, email)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to look up employee")
	}
	if employee == nil {
		return "", nil, ErrUnknownEmail
	}

	token, err := NewSessionToken(employee, s.secret)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to sign session token")
	}
	slog.InfoContext(ctx, "otp verified", slog.String("email", email))
	return token, employee, nil
}

// ResendOTP invalidates any pending code and issues a fresh one.
func (s *Service) ResendOTP(ctx context.Context, email string) (*store.Employee, error) {
	return s.SendOTP(ctx, email)
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpDigits))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func otpKey(email string) string {
	return "otp:" + email
}
