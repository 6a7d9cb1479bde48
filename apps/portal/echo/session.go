package echoportal

import (
	"fmt"
	"net/http"
	"net/mail"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/lideo/core"
	"github.com/trezcool/lideo/core/identity"
	"github.com/trezcool/lideo/core/otp"
	"github.com/trezcool/lideo/core/portal"
)

type authApi struct {
	conf   *core.Config
	logger core.Logger
	mail   core.EmailService
}

func registerAuthAPI(g *echo.Group, deps ServerDeps) {
	api := authApi{
		conf:   deps.Conf,
		logger: deps.Logger,
		mail:   deps.Mail,
	}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.POST("/superadmin/access", api.superAdminAccess)
	ag.POST("/superadmin/verify", api.superAdminVerify)
	ag.POST("/logout", api.logout)
	ag.GET("/session", api.session)

	g.GET("/portal", api.portal)
}

// Handlers

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	store := contextStore(ctx)
	id, err := store.Login(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		if errors.Cause(err) == identity.ErrAuthenticationFailed {
			return core.NewValidationError(errors.New("invalid credentials"))
		}
		return errors.Wrap(err, "authenticating")
	}

	return ctx.JSON(http.StatusOK, newSessionResponse(&id, identity.StateAuthenticated))
}

// superAdminAccess checks the access phrase, generates the one-time code and
// issues the pending verification challenge. The code is emailed to the
// configured super-admin address; in debug mode it is also returned in the
// response for the on-screen display.
func (api *authApi) superAdminAccess(ctx echo.Context) error {
	var data AccessRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AccessRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	if data.AccessKey != api.conf.SuperAdmin.AccessKey {
		return core.NewValidationError(nil, core.FieldError{Field: "accessKey", Error: "invalid access key"})
	}

	now := time.Now()
	code := otp.Generate(data.AccessKey, now)
	deadline := now.Add(api.conf.SuperAdmin.CodeTTL)

	claims := &challengeClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    api.conf.AppName,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(deadline),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Code: code,
	}
	if err := setChallengeCookie(ctx, claims, api.conf); err != nil {
		return errors.Wrap(err, "issuing challenge")
	}

	api.mail.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Address: api.conf.SuperAdmin.Email}},
		Subject: "Super admin verification code",
		BodyStr: fmt.Sprintf("Your verification code is %s. It expires in %v.", code, api.conf.SuperAdmin.CodeTTL),
	})

	resp := AccessResponse{ChallengeID: claims.ID, ExpiresAt: deadline}
	if api.conf.Debug {
		resp.Code = code
	}
	return ctx.JSON(http.StatusOK, resp)
}

// superAdminVerify compares the submitted code against the pending challenge.
// An expired challenge sends the caller back to the access step.
func (api *authApi) superAdminVerify(ctx echo.Context) error {
	var data VerifyRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to VerifyRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	challenge, err := getChallenge(ctx, api.conf)
	if err != nil {
		return err
	}

	store := contextStore(ctx)
	id, err := store.LoginWithCode(data.Code, challenge.Code)
	if err != nil {
		if errors.Cause(err) == identity.ErrCodeMismatch {
			return core.NewValidationError(nil, core.FieldError{Field: "code", Error: "invalid verification code"})
		}
		return errors.Wrap(err, "verifying code")
	}
	clearChallengeCookie(ctx, api.conf)

	return ctx.JSON(http.StatusOK, newSessionResponse(&id, identity.StateAuthenticated))
}

func (api *authApi) logout(ctx echo.Context) error {
	if err := contextStore(ctx).Logout(); err != nil {
		return errors.Wrap(err, "logging out")
	}
	clearChallengeCookie(ctx, api.conf)
	return ctx.NoContent(http.StatusNoContent)
}

func (api *authApi) session(ctx echo.Context) error {
	id, state := contextStore(ctx).Current()
	return ctx.JSON(http.StatusOK, newSessionResponse(id, state))
}

func (api *authApi) portal(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, portal.ForIdentity(contextIdentity(ctx)))
}
