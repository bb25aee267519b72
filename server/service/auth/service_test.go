package auth

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/orgai/hr-assistant/store"
)

type stubDirectory struct {
	employees map[string]*store.Employee
}

func (d *stubDirectory) GetEmployeeByEmail(_ context.Context, email string) (*store.Employee, error) {
	return d.employees[email], nil
}

type stubSender struct {
	lastTo   string
	lastCode string
	calls    int
}

func (s *stubSender) SendOTP(_ context.Context, to, code string) error {
	s.calls++
	s.lastTo = to
	s.lastCode = code
	return nil
}

func newTestService(t *testing.T) (*Service, *stubSender) {
	t.Helper()
	directory := &stubDirectory{employees: map[string]*store.Employee{
		"asha@example.com": {ID: 1, EmpID: 1001, FullName: "Asha Rao", Email: "asha@example.com"},
	}}
	sender := &stubSender{}
	service := NewService(directory, sender, "test-secret", "Acme")
	t.Cleanup(service.Close)
	return service, sender
}

func TestSendOTPUnknownEmail(t *testing.T) {
	service, sender := newTestService(t)

	_, err := service.SendOTP(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, ErrUnknownEmail)
	assert.Equal(t, 0, sender.calls)
}

func TestSendOTPDeliversSixDigitCode(t *testing.T) {
	service, sender := newTestService(t)

	employee, err := service.SendOTP(context.Background(), "  Asha@Example.com ")
	require.NoError(t, err)
	require.NotNil(t, employee)
	assert.Equal(t, int32(1001), employee.EmpID)
	assert.Equal(t, "asha@example.com", sender.lastTo)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), sender.lastCode)
}

func TestVerifyOTPSuccess(t *testing.T) {
	service, sender := newTestService(t)
	ctx := context.Background()

	_, err := service.SendOTP(ctx, "asha@example.com")
	require.NoError(t, err)

	token, employee, err := service.VerifyOTP(ctx, "asha@example.com", sender.lastCode)
	require.NoError(t, err)
	require.NotNil(t, employee)
	assert.Equal(t, "Asha Rao", employee.FullName)

	claims, err := VerifySessionToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, int32(1001), claims.EmpID)

	// The code is single use.
	_, _, err = service.VerifyOTP(ctx, "asha@example.com", sender.lastCode)
	assert.ErrorIs(t, err, ErrNoOTP)
}

func TestVerifyOTPWithoutPendingCode(t *testing.T) {
	service, _ := newTestService(t)

	_, _, err := service.VerifyOTP(context.Background(), "asha@example.com", "123456")
	assert.ErrorIs(t, err, ErrNoOTP)
}

func TestVerifyOTPWrongCodeThenRight(t *testing.T) {
	service, sender := newTestService(t)
	ctx := context.Background()

	_, err := service.SendOTP(ctx, "asha@example.com")
	require.NoError(t, err)

	_, _, err = service.VerifyOTP(ctx, "asha@example.com", "000000")
	assert.ErrorIs(t, err, ErrInvalidOTP)
	_, _, err = service.VerifyOTP(ctx, "asha@example.com", "000001")
	assert.ErrorIs(t, err, ErrInvalidOTP)

	token, _, err := service.VerifyOTP(ctx, "asha@example.com", sender.lastCode)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestVerifyOTPAttemptCap(t *testing.T) {
	service, sender := newTestService(t)
	ctx := context.Background()

	_, err := service.SendOTP(ctx, "asha@example.com")
	require.NoError(t, err)

	_, _, err = service.VerifyOTP(ctx, "asha@example.com", "000000")
	assert.ErrorIs(t, err, ErrInvalidOTP)
	_, _, err = service.VerifyOTP(ctx, "asha@example.com", "000000")
	assert.ErrorIs(t, err, ErrInvalidOTP)
	_, _, err = service.VerifyOTP(ctx, "asha@example.com", "000000")
	assert.ErrorIs(t, err, ErrTooManyAttempts)

	// State is cleared after the cap; even the right code is rejected.
	_, _, err = service.VerifyOTP(ctx, "asha@example.com", sender.lastCode)
	assert.ErrorIs(t, err, ErrNoOTP)
}

func TestVerifyOTPExpiredCode(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	require.NoError(t, err)
	service.pending.SetWithTTL(ctx, otpKey("asha@example.com"), &otpState{
		hash:      hash,
		expiresAt: time.Now().Add(-time.Second),
	}, time.Minute)

	_, _, err = service.VerifyOTP(ctx, "asha@example.com", "123456")
	assert.ErrorIs(t, err, ErrOTPExpired)
}

func TestResendOTPReplacesPendingCode(t *testing.T) {
	service, sender := newTestService(t)
	ctx := context.Background()

	_, err := service.SendOTP(ctx, "asha@example.com")
	require.NoError(t, err)
	first := sender.lastCode

	_, err = service.ResendOTP(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, sender.calls)

	if first != sender.lastCode {
		_, _, err = service.VerifyOTP(ctx, "asha@example.com", first)
		assert.ErrorIs(t, err, ErrInvalidOTP)
	}
	token, _, err := service.VerifyOTP(ctx, "asha@example.com", sender.lastCode)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestSessionTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewSessionToken(&store.Employee{EmpID: 7, Email: "x@example.com"}, "secret-a")
	require.NoError(t, err)

	_, err = VerifySessionToken(token, "secret-b")
	assert.Error(t, err)
}

func TestSessionTokenRejectsGarbage(t *testing.T) {
	_, err := VerifySessionToken("not-a-token", "secret")
	assert.Error(t, err)
}
