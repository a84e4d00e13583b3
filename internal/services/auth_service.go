package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"geugeu/internal/models"
	"geugeu/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL is the validity window for tokens issued on login.
const DefaultTokenTTL = 24 * time.Hour

// Token is the credential pair returned by every login flow.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// GoogleOAuthConfig configures the Google authorization-code exchange.
// TokenURL and UserInfoURL default to Google's endpoints and are only
// overridden in tests.
type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	UserInfoURL  string
}

// AppleOAuthConfig configures the Sign in with Apple exchange. The client
// secret is not static: it is an ES256 token signed with PrivateKeyPEM.
type AppleOAuthConfig struct {
	ClientID      string
	TeamID        string
	KeyID         string
	PrivateKeyPEM string
	TokenURL      string
}

// AuthConfig carries everything AuthService needs beyond the user store.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	Google    GoogleOAuthConfig
	Apple     AppleOAuthConfig
}

// AuthService issues and verifies bearer tokens and resolves their subjects
// back into live user accounts.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenTTL   time.Duration
	google     GoogleOAuthConfig
	apple      AppleOAuthConfig
	httpClient *http.Client
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, cfg AuthConfig) *AuthService {
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	if cfg.Google.TokenURL == "" {
		cfg.Google.TokenURL = "https://oauth2.googleapis.com/token"
	}
	if cfg.Google.UserInfoURL == "" {
		cfg.Google.UserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	}
	if cfg.Apple.TokenURL == "" {
		cfg.Apple.TokenURL = "https://appleid.apple.com/auth/token"
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(cfg.JWTSecret),
		tokenTTL:   cfg.TokenTTL,
		google:     cfg.Google,
		apple:      cfg.Apple,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// IssueToken mints a signed token whose subject is the user's public code.
func (s *AuthService) IssueToken(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("cannot issue token with empty subject")
	}
	now := jwt.TimeFunc()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// VerifyToken checks signature, structure and expiry, returning the subject.
// All failure modes collapse into ErrInvalidCredential.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidCredential
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidCredential
	}
	subject, _ := claims["sub"].(string)
	if subject == "" {
		// A token with no subject is never valid, even well-signed.
		return "", ErrInvalidCredential
	}
	return subject, nil
}

// BearerToken extracts the token from an Authorization header value. An
// absent header is ErrMissingCredential; a present but malformed one is
// ErrInvalidCredential.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingCredential
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", ErrInvalidCredential
	}
	return parts[1], nil
}

// ResolveUser turns a verified token subject into a live user account.
// Nonexistent and soft-deleted accounts are indistinguishable to callers.
func (s *AuthService) ResolveUser(code string) (*models.User, error) {
	user, err := s.userRepo.GetByCode(code)
	if err != nil || user == nil {
		return nil, ErrUnknownAccount
	}
	return user, nil
}

// AuthorizeOwnerOrAdmin is the sole authorization rule: an actor may mutate
// a resource iff they own it or hold the admin flag. Callers must check
// resource existence first so a denied actor learns nothing about it.
func AuthorizeOwnerOrAdmin(actor *models.User, ownerID uint) bool {
	if actor == nil {
		return false
	}
	return actor.ID == ownerID || actor.IsAdmin
}

// Login authenticates an email/password pair and issues a token. The error
// never reveals whether the email exists.
func (s *AuthService) Login(email, password string) (*Token, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil || user == nil {
		return nil, fmt.Errorf("incorrect username or password: %w", ErrInvalidCredential)
	}
	if user.Password == "" {
		// OAuth-provisioned account, no password login.
		return nil, fmt.Errorf("incorrect username or password: %w", ErrInvalidCredential)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("incorrect username or password: %w", ErrInvalidCredential)
	}
	return s.tokenFor(user)
}

func (s *AuthService) tokenFor(user *models.User) (*Token, error) {
	accessToken, err := s.IssueToken(user.Code, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &Token{AccessToken: accessToken, TokenType: "Bearer"}, nil
}

type googleToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type googleUser struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// GoogleLogin exchanges a Google authorization code for a geugeu token,
// provisioning the account on first login.
func (s *AuthService) GoogleLogin(ctx context.Context, code, redirectURI string) (*Token, error) {
	form := url.Values{
		"code":          {code},
		"client_id":     {s.google.ClientID},
		"client_secret": {s.google.ClientSecret},
		"redirect_uri":  {redirectURI},
		"grant_type":    {"authorization_code"},
	}
	var gt googleToken
	if err := s.postForm(ctx, s.google.TokenURL, form, &gt); err != nil {
		return nil, fmt.Errorf("google token exchange failed: %w", ErrInvalidCredential)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.google.UserInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("%s %s", gt.TokenType, gt.AccessToken))
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	var gu googleUser
	if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil {
		return nil, fmt.Errorf("failed to decode google userinfo: %w", err)
	}
	if !gu.VerifiedEmail {
		return nil, fmt.Errorf("google account is not verified: %w", ErrInvalidCredential)
	}
	return s.loginOrProvision(gu.Email, gu.Name, gu.Picture, models.AuthProviderGoogle)
}

type appleToken struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
}

// AppleLogin exchanges a Sign in with Apple authorization code for a geugeu
// token. The identity claims come out of Apple's id_token; its signature is
// not re-verified since the token was just received over the code exchange.
func (s *AuthService) AppleLogin(ctx context.Context, code, redirectURI string) (*Token, error) {
	clientSecret, err := s.appleClientSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to build apple client secret: %w", err)
	}

	form := url.Values{
		"client_id":     {s.apple.ClientID},
		"client_secret": {clientSecret},
		"code":          {code},
		"grant_type":    {"authorization_code"},
		"redirect_uri":  {redirectURI},
	}
	var at appleToken
	if err := s.postForm(ctx, s.apple.TokenURL, form, &at); err != nil {
		return nil, fmt.Errorf("apple token exchange failed: %w", ErrInvalidCredential)
	}

	claims := jwt.MapClaims{}
	parser := &jwt.Parser{}
	if _, _, err := parser.ParseUnverified(at.IDToken, claims); err != nil {
		return nil, fmt.Errorf("failed to parse apple id_token: %w", ErrInvalidCredential)
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("apple id_token has no email: %w", ErrInvalidCredential)
	}
	if !appleEmailVerified(claims["email_verified"]) {
		return nil, fmt.Errorf("apple account is not verified: %w", ErrInvalidCredential)
	}
	return s.loginOrProvision(email, "", "", models.AuthProviderApple)
}

// appleEmailVerified tolerates Apple sending the flag as bool or string.
func appleEmailVerified(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true"
	default:
		return false
	}
}

// appleClientSecret signs the short-lived ES256 credential Apple requires
// in place of a static client secret.
func (s *AuthService) appleClientSecret() (string, error) {
	key, err := jwt.ParseECPrivateKeyFromPEM([]byte(s.apple.PrivateKeyPEM))
	if err != nil {
		return "", fmt.Errorf("failed to parse apple private key: %w", err)
	}
	now := jwt.TimeFunc()
	token := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.MapClaims{
		"iss": s.apple.TeamID,
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
		"aud": "https://appleid.apple.com",
		"sub": s.apple.ClientID,
	})
	token.Header["kid"] = s.apple.KeyID
	return token.SignedString(key)
}

// loginOrProvision issues a token for the account owning the email,
// creating it on first OAuth login. Emails of soft-deleted accounts are
// refused so deletion cannot be undone through an OAuth provider.
func (s *AuthService) loginOrProvision(email, nickname, pictureURL, provider string) (*Token, error) {
	user, err := s.userRepo.GetByEmailAny(email)
	if err == nil && user != nil {
		if user.DeletedAt.Valid {
			return nil, fmt.Errorf("cannot sign in with this email: %w", ErrUnknownAccount)
		}
		return s.tokenFor(user)
	}

	user = &models.User{
		Email:           email,
		Nickname:        nickname,
		Password:        "",
		IsAdmin:         false,
		ProfileImageURL: pictureURL,
		AuthProvider:    provider,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to provision %s account: %w", provider, err)
	}
	log.Printf("Provisioned new %s account for user %s", provider, user.Code)
	return s.tokenFor(user)
}

func (s *AuthService) postForm(ctx context.Context, endpoint string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
