package account

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cvdss/cvdss/internal/platform/auth"
)

type Handler struct {
	svc         *Service
	issuer      *auth.TokenIssuer
	revocations auth.RevocationStore
	logger      zerolog.Logger
}

func NewHandler(svc *Service, issuer *auth.TokenIssuer, revocations auth.RevocationStore, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, issuer: issuer, revocations: revocations, logger: logger}
}

// RegisterRoutes mounts the auth endpoints. register and login are listed in
// the auth skipper; logout needs a valid token.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/auth")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/logout", auth.LogoutHandler(h.revocations, h.logger))
}

func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.svc.Register(c.Request().Context(), req)
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, user)
	case errors.Is(err, ErrUsernameTaken):
		return echo.NewHTTPError(http.StatusConflict, ErrUsernameTaken.Error())
	case errors.Is(err, ErrUnknownRole), errors.Is(err, ErrInvalidUsername), errors.Is(err, ErrWeakPassword):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("register failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "registration failed")
	}
}

func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.svc.Authenticate(c.Request().Context(), req.Username, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("login failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}

	token, claims, err := h.issuer.Issue(user.Subject(), user.UserType)
	if err != nil {
		h.logger.Error().Err(err).Msg("issue token")
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		UserID:    user.ID,
		UserType:  user.UserType,
		ExpiresAt: claims.ExpiresAt.Time,
	})
}
