// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "frishta/internal/delivery/context"
	"frishta/internal/delivery/http/response"
	"frishta/internal/domain/entity"
	"frishta/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for registration and session handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

type registerStartRequest struct {
	FullName   string   `json:"fullName"`
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	Role       string   `json:"role"`
	PhoneNo    string   `json:"phoneNo"`
	Country    string   `json:"country"`
	State      string   `json:"state"`
	Gender     string   `json:"gender"`
	Age        *int     `json:"age"`
	Categories []string `json:"categories"`
}

type registerVerifyRequest struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
}

type registerResendRequest struct {
	Email string `json:"email"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// otpIssuedResponse mirrors OtpIssuedOutput; the code is only present on
// deployments that expose it.
type otpIssuedResponse struct {
	EmailQueued bool   `json:"emailQueued"`
	Otp         string `json:"otp,omitempty"`
}

// userResponse is the public view of an account. Credentials never appear.
type userResponse struct {
	ID         uuid.UUID `json:"id"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	PhoneNo    string    `json:"phoneNo"`
	Country    string    `json:"country"`
	State      string    `json:"state"`
	Gender     string    `json:"gender"`
	Age        int       `json:"age"`
	Categories []string  `json:"categories"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func toUserResponse(user *entity.User) userResponse {
	return userResponse{
		ID:         user.ID,
		FullName:   user.FullName,
		Email:      user.Email,
		Role:       user.Role.String(),
		PhoneNo:    user.PhoneNo,
		Country:    user.Country,
		State:      user.State,
		Gender:     user.Gender.String(),
		Age:        user.Age,
		Categories: user.Categories,
	}
}

// RegisterStart handles the first step of registration.
func (h *AuthHandler) RegisterStart(c echo.Context) error {
	var req registerStartRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	output, err := h.uc.RegisterStart(c.Request().Context(), &usecase.RegisterStartInput{
		FullName:   req.FullName,
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		PhoneNo:    req.PhoneNo,
		Country:    req.Country,
		State:      req.State,
		Gender:     req.Gender,
		Age:        req.Age,
		Categories: req.Categories,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, otpIssuedResponse{
		EmailQueued: output.EmailQueued,
		Otp:         output.Otp,
	}, output.Message)
}

// RegisterVerify handles OTP confirmation.
func (h *AuthHandler) RegisterVerify(c echo.Context) error {
	var req registerVerifyRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification input")
	}

	err := h.uc.RegisterVerify(c.Request().Context(), &usecase.RegisterVerifyInput{
		Email: req.Email,
		Otp:   req.Otp,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Email verified. You can now login.")
}

// RegisterResend handles OTP reissue for a pending registration.
func (h *AuthHandler) RegisterResend(c echo.Context) error {
	var req registerResendRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid resend input")
	}

	output, err := h.uc.RegisterResend(c.Request().Context(), req.Email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, otpIssuedResponse{
		EmailQueued: output.EmailQueued,
		Otp:         output.Otp,
	}, output.Message)
}

// Login handles the credential check and session issuance.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: c.Request().UserAgent(),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, loginResponse{
		Token: output.Token,
		User:  toUserResponse(output.User),
	}, "Login successful")
}

// Logout revokes the presented session.
func (h *AuthHandler) Logout(c echo.Context) error {
	tokenHash, ok := deliverycontext.GetTokenHash(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_SESSION", "Invalid session")
	}

	if err := h.uc.Logout(c.Request().Context(), tokenHash); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Logged out")
}

// Profile returns the authenticated user's account.
func (h *AuthHandler) Profile(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_SESSION", "Invalid session")
	}

	user, err := h.uc.Profile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]userResponse{"user": toUserResponse(user)}, "")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
