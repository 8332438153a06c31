package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/citywave/table-reservation/internal/config"
	"github.com/citywave/table-reservation/internal/service"
	"github.com/citywave/table-reservation/internal/utils"
)

// AuthHandler bundles dependencies for the admin login endpoint.
type AuthHandler struct {
	Cfg  config.Config
	Auth *service.Authenticator
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(cfg config.Config, auth *service.Authenticator) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Auth: auth}
}

type loginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type accountPart struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsMain   bool   `json:"isMain"`
}

type loginResp struct {
	Token   string      `json:"token"`
	Expires time.Time   `json:"expires"`
	Account accountPart `json:"account"`
}

// Login validates admin credentials and returns a signed session token
// plus the account identity, so the client can render the main-admin view
// without another round trip. The stored password is never echoed back.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := c.Validate(&req); err != nil {
		return writeErr(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	admin, err := h.Auth.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return writeErr(c, err)
	}
	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, admin, h.Cfg.AccessTTLMin)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, loginResp{
		Token:   tok.Token,
		Expires: tok.Exp,
		Account: accountPart{ID: admin.ID, Username: admin.Username, IsMain: admin.IsMain},
	})
}
