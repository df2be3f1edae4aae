package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/famvault/famvault/internal/windmill"
)

// AuthHandler forwards authentication calls to the backend workflows and
// mirrors the token into a cookie for browser sessions.
type AuthHandler struct {
	Client       *windmill.Client
	CookieSecure bool
}

func (a *AuthHandler) Register(g *echo.Group) {
	g.POST("/login", a.login)
	g.POST("/refresh", a.refresh)
	g.POST("/logout", a.logout)
	g.POST("/password", a.setPassword)
	g.POST("/password/reset", a.requestReset)
	g.GET("/verify", a.verify)
}

type loginRequest struct {
	Email    string               `json:"email"`
	Password string               `json:"password"`
	Device   *windmill.DeviceInfo `json:"device_info,omitempty"`
}

func (a *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := a.Client.Login(c.Request().Context(), req.Email, req.Password, req.Device)
	if err != nil {
		return err
	}
	if !res.Success {
		msg := res.Error
		if msg == "" {
			msg = "invalid credentials"
		}
		return echo.NewHTTPError(http.StatusUnauthorized, msg)
	}
	a.setCookie(c, res.AccessToken, res.ExpiresIn)
	return c.JSON(http.StatusOK, res)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (a *AuthHandler) refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := a.Client.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	if !res.Success {
		msg := res.Error
		if msg == "" {
			msg = "refresh rejected"
		}
		return echo.NewHTTPError(http.StatusUnauthorized, msg)
	}
	a.setCookie(c, res.AccessToken, res.ExpiresIn)
	return c.JSON(http.StatusOK, res)
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
	RevokeAll    bool   `json:"revoke_all"`
}

func (a *AuthHandler) logout(c echo.Context) error {
	var req logoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := a.Client.Logout(c.Request().Context(), req.RefreshToken, req.RevokeAll)
	if err != nil {
		return err
	}
	a.clearCookie(c)
	return c.JSON(http.StatusOK, res)
}

type setPasswordRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	InviteToken   string `json:"invite_token,omitempty"`
	AdminOverride bool   `json:"admin_override,omitempty"`
}

func (a *AuthHandler) setPassword(c echo.Context) error {
	var req setPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	var opts *windmill.SetPasswordOptions
	if req.InviteToken != "" || req.AdminOverride {
		opts = &windmill.SetPasswordOptions{InviteToken: req.InviteToken, AdminOverride: req.AdminOverride}
	}
	res, err := a.Client.SetPassword(c.Request().Context(), req.Email, req.Password, opts)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (a *AuthHandler) requestReset(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := a.Client.RequestPasswordReset(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (a *AuthHandler) verify(c echo.Context) error {
	tok := bearerToken(c)
	if tok == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	res, err := a.Client.VerifyToken(c.Request().Context(), tok)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (a *AuthHandler) setCookie(c echo.Context, token string, expiresIn int) {
	cookie := new(http.Cookie)
	cookie.Name = "auth"
	cookie.Value = token
	cookie.Path = "/"
	cookie.HttpOnly = true
	cookie.SameSite = http.SameSiteLaxMode
	cookie.Secure = a.CookieSecure
	if expiresIn > 0 {
		cookie.MaxAge = expiresIn
	}
	c.SetCookie(cookie)
}

func (a *AuthHandler) clearCookie(c echo.Context) {
	cookie := new(http.Cookie)
	cookie.Name = "auth"
	cookie.Value = ""
	cookie.Path = "/"
	cookie.MaxAge = -1
	c.SetCookie(cookie)
}
