package echoportal

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/lideo/core"
	"github.com/trezcool/lideo/core/identity"
)

const challengeCookieName = "superAdminChallenge"

// Claims represents the session identity transmitted via a signed cookie.
type Claims struct {
	jwt.RegisteredClaims
	Name         string `json:"name,omitempty"`
	Role         string `json:"role,omitempty"` // -> selects the portal
	UniversityID int    `json:"university_id,omitempty"`
	StudentID    int    `json:"student_id,omitempty"`
}

func getIdentityClaims(id identity.Identity, conf *core.Config) *Claims {
	now := time.Now()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    conf.AppName,
			Subject:   id.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(conf.Session.MaxAge)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        id.Email,
		},
		Name:         id.Name,
		Role:         id.Role,
		UniversityID: id.UniversityID,
		StudentID:    id.StudentID,
	}
}

func identityFromClaims(claims *Claims) identity.Identity {
	id := identity.Identity{
		ID:           claims.Subject,
		Email:        claims.ID,
		Name:         claims.Name,
		Role:         claims.Role,
		UniversityID: claims.UniversityID,
		StudentID:    claims.StudentID,
	}
	if claims.IssuedAt != nil {
		id.CreatedAt = claims.IssuedAt.Time
	}
	return id
}

// GenerateToken generates a signed JWT token string representing the claims.
func GenerateToken(claims jwt.Claims, conf *core.Config) (string, error) {
	ss, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func parseToken(token string, claims jwt.Claims, conf *core.Config) error {
	_, err := jwt.ParseWithClaims(
		token, claims,
		func(t *jwt.Token) (interface{}, error) { return []byte(conf.SecretKey), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	return err
}

// cookieKeeper persists the session identity as a signed cookie on the
// current exchange, the browser counterpart of identity.FileKeeper. A fresh
// keeper is bound to every request.
type cookieKeeper struct {
	ctx  echo.Context
	conf *core.Config
}

var _ identity.Keeper = (*cookieKeeper)(nil)

func newCookieKeeper(ctx echo.Context, conf *core.Config) *cookieKeeper {
	return &cookieKeeper{ctx: ctx, conf: conf}
}

func (k *cookieKeeper) ReadIdentity() (*identity.Identity, error) {
	cookie, err := k.ctx.Cookie(k.conf.Session.CookieName)
	if err != nil { // http.ErrNoCookie
		return nil, nil
	}
	claims := new(Claims)
	if err = parseToken(cookie.Value, claims, k.conf); err != nil {
		return nil, errors.Wrap(err, "parsing session cookie")
	}
	id := identityFromClaims(claims)
	return &id, nil
}

func (k *cookieKeeper) WriteIdentity(id identity.Identity) error {
	token, err := GenerateToken(getIdentityClaims(id, k.conf), k.conf)
	if err != nil {
		return err
	}
	k.setCookie(k.conf.Session.CookieName, token, int(k.conf.Session.MaxAge.Seconds()))
	return nil
}

func (k *cookieKeeper) WriteLastCode(code string) error {
	k.setCookie(k.conf.Session.CodeKey, code, int(k.conf.Session.MaxAge.Seconds()))
	return nil
}

func (k *cookieKeeper) Clear() error {
	k.setCookie(k.conf.Session.CookieName, "", -1)
	k.setCookie(k.conf.Session.CodeKey, "", -1)
	return nil
}

func (k *cookieKeeper) setCookie(name, value string, maxAge int) {
	k.ctx.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   k.conf.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// challengeClaims is the pending super-admin verification step: the expected
// code and its deadline travel in a short-lived signed cookie.
type challengeClaims struct {
	jwt.RegisteredClaims
	Code string `json:"code"`
}

func setChallengeCookie(ctx echo.Context, claims *challengeClaims, conf *core.Config) error {
	token, err := GenerateToken(claims, conf)
	if err != nil {
		return err
	}
	ctx.SetCookie(&http.Cookie{
		Name:     challengeCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(conf.SuperAdmin.CodeTTL.Seconds()),
		HttpOnly: true,
		Secure:   conf.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// getChallenge reads the pending verification step. An absent, tampered or
// expired cookie sends the caller back to the access step.
func getChallenge(ctx echo.Context, conf *core.Config) (*challengeClaims, error) {
	cookie, err := ctx.Cookie(challengeCookieName)
	if err != nil {
		return nil, errChallengeExpired
	}
	claims := new(challengeClaims)
	if err = parseToken(cookie.Value, claims, conf); err != nil {
		return nil, errChallengeExpired
	}
	return claims, nil
}

func clearChallengeCookie(ctx echo.Context, conf *core.Config) {
	ctx.SetCookie(&http.Cookie{
		Name:     challengeCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   conf.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
