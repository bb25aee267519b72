package v1

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/orgai/hr-assistant/server/middleware"
	"github.com/orgai/hr-assistant/server/service/auth"
)

type SendOTPRequest struct {
	Email string `json:"email"`
}

type SendOTPResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type SessionUser struct {
	EmpID       int32  `json:"emp_id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Department  string `json:"department,omitempty"`
	Designation string `json:"designation,omitempty"`
}

type VerifyOTPResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *SessionUser `json:"user"`
}

// SendOTP emails a one-time code to a directory employee.
func (s *APIV1Service) SendOTP(c echo.Context) error {
	request := &SendOTPRequest{}
	if err := c.Bind(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
	}
	if strings.TrimSpace(request.Email) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email is required")
	}

	employee, err := s.Auth.SendOTP(c.Request().Context(), request.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUnknownEmail) {
			return echo.NewHTTPError(http.StatusNotFound, auth.ErrUnknownEmail.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to send OTP").SetInternal(err)
	}
	return c.JSON(http.StatusOK, &SendOTPResponse{
		Message: "OTP sent to your email",
		Email:   employee.Email,
	})
}

// VerifyOTP exchanges a one-time code for a session token. The token
// is returned in the body and also set as an httponly cookie.
func (s *APIV1Service) VerifyOTP(c echo.Context) error {
	request := &VerifyOTPRequest{}
	if err := c.Bind(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
	}
	if strings.TrimSpace(request.Email) == "" || strings.TrimSpace(request.OTP) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and OTP are required")
	}

	token, employee, err := s.Auth.VerifyOTP(c.Request().Context(), request.Email, request.OTP)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidOTP),
			errors.Is(err, auth.ErrNoOTP),
			errors.Is(err, auth.ErrOTPExpired),
			errors.Is(err, auth.ErrTooManyAttempts):
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		case errors.Is(err, auth.ErrUnknownEmail):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to verify OTP").SetInternal(err)
		}
	}

	if s.Stats != nil {
		s.Stats.RecordLogin()
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionTokenDuration / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   !s.Profile.IsDev(),
	})
	return c.JSON(http.StatusOK, &VerifyOTPResponse{
		Message: "Login successful",
		Token:   token,
		User: &SessionUser{
			EmpID:       employee.EmpID,
			FullName:    employee.FullName,
			Email:       employee.Email,
			Department:  employee.Department,
			Designation: employee.Designation,
		},
	})
}

// ResendOTP invalidates any pending code and sends a fresh one.
func (s *APIV1Service) ResendOTP(c echo.Context) error {
	return s.SendOTP(c)
}

// Logout clears the session cookie. Tokens are stateless so there is
// nothing to revoke server side.
func (s *APIV1Service) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me returns the employee behind the current session.
func (s *APIV1Service) Me(c echo.Context) error {
	claims := middleware.SessionClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	employee, err := s.Store.GetEmployeeByEmail(c.Request().Context(), claims.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load employee").SetInternal(err)
	}
	if employee == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Employee not found")
	}
	return c.JSON(http.StatusOK, &SessionUser{
		EmpID:       employee.EmpID,
		FullName:    employee.FullName,
		Email:       employee.Email,
		Department:  employee.Department,
		Designation: employee.Designation,
	})
}
