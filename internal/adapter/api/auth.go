package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mileusna/useragent"

	authservice "github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/auth"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/unitofwork"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/user"
)

func (s *Server) MountAuth() {
	loginRequired := LoginRequired(s.authService.Authorizer)

	authRoutes := s.handler.Group("/auth")

	authRoutes.POST("/sign-up", s.SignUp)
	authRoutes.POST("/login", s.Login)
	authRoutes.POST("/refresh", s.Refresh)
	authRoutes.POST("/logout", s.Logout, loginRequired)
}

func (s *Server) getAuthUoW() *unitofwork.UnitOfWork[*authservice.AtomicContext] {
	return unitofwork.New[*authservice.AtomicContext](
		s.db,
		authservice.NewAtomicContext,
		s.msgBus,
		s.logger,
	)
}

type signUpReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type signUpResp struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func (s *Server) SignUp(c echo.Context) error {
	var b signUpReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	uow := s.getAuthUoW()

	u, err := s.authService.CreateUser(c.Request().Context(), uow, b.Email, b.Password)
	if err != nil {
		if errors.Is(err, user.ErrUserExists) {
			return JsonError(c, http.StatusConflict, "user already exists")
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusCreated, signUpResp{
		UserID: u.UserID,
		Email:  u.Email,
	})
}

type loginReq struct {
	Email    string `json:"email" form:"username" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
}

type loginResp struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (s *Server) Login(c echo.Context) error {
	var b loginReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	agent := useragent.Parse(c.Request().UserAgent())

	ipAddress := c.Request().RemoteAddr
	if c.Request().Header.Get("X-Forwarded-For") != "" {
		ipAddress = c.Request().Header.Get("X-Forwarded-For")
	}

	device := user.Device{
		Browser:   agent.Name,
		OS:        agent.OS,
		IPAddress: ipAddress,
		Model:     agent.Device,
	}

	uow := s.getAuthUoW()

	tokens, err := s.authService.Login(c.Request().Context(), uow, device, b.Email, b.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) || errors.Is(err, user.ErrUserNotFound) {
			return JsonError(c, http.StatusUnauthorized, "invalid email or password")
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, loginResp{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (s *Server) Refresh(c echo.Context) error {
	var b refreshReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	uow := s.getAuthUoW()

	tokens, err := s.authService.Refresh(c.Request().Context(), uow, b.RefreshToken)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidAuthorization) || errors.Is(err, user.ErrUserNotFound) {
			return JsonError(c, http.StatusUnauthorized, "invalid refresh token")
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, loginResp{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

func (s *Server) Logout(c echo.Context) error {
	tokenData := c.Get(KeyCurrentUser).(*authservice.AccessTokenData)

	uow := s.getAuthUoW()

	err := s.authService.Logout(c.Request().Context(), uow, tokenData.UserID, tokenData.Authorization)
	if err != nil {
		if errors.Is(err, user.ErrUnauthorized) {
			return JsonError(c, http.StatusUnauthorized, err)
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.NoContent(http.StatusNoContent)
}
