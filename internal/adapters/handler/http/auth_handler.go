package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

const refreshTokenCookie = "refresh_token"

type CookieConfig struct {
	Domain     string
	SameSite   http.SameSite
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type AuthHandler struct {
	authService ports.AuthService
	cookies     CookieConfig
	logger      *slog.Logger
}

func NewAuthHandler(authService ports.AuthService, cookies CookieConfig, logger *slog.Logger) *AuthHandler {
	if cookies.SameSite == 0 {
		cookies.SameSite = http.SameSiteLaxMode
	}
	return &AuthHandler{
		authService: authService,
		cookies:     cookies,
		logger:      resolveLogger(logger),
	}
}

type registerRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	NationalID     string `json:"nationalId" validate:"required,len=13,numeric"`
	FullName       string `json:"fullName" validate:"required"`
	Address        string `json:"address"`
	ConstituencyID *int64 `json:"constituencyId" validate:"omitempty,min=1"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type googleLoginRequest struct {
	Credential string `json:"credential" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	Token string `json:"token"`
}

// Register godoc
// @Summary      Registers a voter
// @Description  Creates a voter profile and signs it in. Sets the access and refresh token cookies.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "profile"
// @Success      201   {object}  envelope{data=domain.Session}
// @Failure      400   {object}  envelope
// @Router       /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	session, err := h.authService.Register(r.Context(), ports.RegisterInput{
		Email:          req.Email,
		Password:       req.Password,
		NationalID:     req.NationalID,
		FullName:       req.FullName,
		Address:        req.Address,
		ConstituencyID: req.ConstituencyID,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.setSessionCookies(w, session)
	writeMessage(w, h.logger, http.StatusCreated, session, "registration successful")
}

// Login godoc
// @Summary      Signs in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "credentials"
// @Success      200   {object}  envelope{data=domain.Session}
// @Failure      401   {object}  envelope
// @Router       /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	session, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.setSessionCookies(w, session)
	writeMessage(w, h.logger, http.StatusOK, session, "signed in")
}

// GoogleLogin godoc
// @Summary      Signs in with a Google ID token
// @Description  Accepts the Google Identity Services credential as JSON or as a form post.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      googleLoginRequest  true  "credential"
// @Success      200   {object}  envelope{data=domain.Session}
// @Failure      401   {object}  envelope
// @Router       /auth/google [post]
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
	if r.Header.Get("Content-Type") == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			writeError(w, r, h.logger, domain.Validation("failed to parse form"))
			return
		}
		req.Credential = r.FormValue("credential")
		if err := validateStruct(&req); err != nil {
			writeError(w, r, h.logger, err)
			return
		}
	} else if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	session, err := h.authService.LoginWithGoogle(r.Context(), req.Credential)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.setSessionCookies(w, session)
	writeMessage(w, h.logger, http.StatusOK, session, "signed in")
}

// Refresh godoc
// @Summary      Refreshes the access token
// @Description  Issues a new access token from the refresh token cookie (or body) and sets it as a cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  envelope{data=refreshResponse}
// @Failure      401  {object}  envelope
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken := h.refreshTokenFrom(r)
	if refreshToken == "" {
		writeError(w, r, h.logger, domain.ErrUnauthenticated)
		return
	}

	accessToken, err := h.authService.RefreshAccessToken(r.Context(), refreshToken)
	if err != nil {
		h.expireCookies(w)
		writeError(w, r, h.logger, err)
		return
	}

	h.setAccessTokenCookie(w, accessToken)
	writeData(w, h.logger, http.StatusOK, refreshResponse{Token: accessToken})
}

// Me godoc
// @Summary      Returns the signed-in profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=domain.Profile}
// @Failure      401  {object}  envelope
// @Router       /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, r, h.logger, domain.ErrUnauthenticated)
		return
	}

	profile, err := h.authService.Profile(r.Context(), identity.ProfileID.String())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, h.logger, http.StatusOK, profile)
}

// Logout godoc
// @Summary      Logs the authenticated user out
// @Description  Revokes the refresh token and clears both cookies
// @Tags         auth
// @Produce      json
// @Success      200  {object}  envelope
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if refreshToken := h.refreshTokenFrom(r); refreshToken != "" {
		if err := h.authService.Logout(r.Context(), refreshToken); err != nil {
			h.logger.WarnContext(r.Context(), "failed to revoke refresh token", "error", err.Error())
		}
	}

	h.expireCookies(w)
	writeMessage(w, h.logger, http.StatusOK, nil, "signed out")
}

func (h *AuthHandler) refreshTokenFrom(r *http.Request) string {
	if cookie, err := r.Cookie(refreshTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if r.ContentLength == 0 {
		return ""
	}
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		return ""
	}
	return req.RefreshToken
}

func (h *AuthHandler) setSessionCookies(w http.ResponseWriter, session *domain.Session) {
	h.setAccessTokenCookie(w, session.AccessToken)
	h.setRefreshTokenCookie(w, session.RefreshToken)
}

func (h *AuthHandler) setAccessTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    token,
		Path:     "/",
		Domain:   h.cookies.Domain,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: h.cookies.SameSite,
		MaxAge:   int(h.cookies.AccessTTL.Seconds()),
	})
}

func (h *AuthHandler) setRefreshTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    token,
		Path:     "/api/auth",
		Domain:   h.cookies.Domain,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: h.cookies.SameSite,
		MaxAge:   int(h.cookies.RefreshTTL.Seconds()),
	})
}

func (h *AuthHandler) expireCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: accessTokenCookie, MaxAge: -1, Path: "/", Domain: h.cookies.Domain})
	http.SetCookie(w, &http.Cookie{Name: refreshTokenCookie, MaxAge: -1, Path: "/api/auth", Domain: h.cookies.Domain})
}
