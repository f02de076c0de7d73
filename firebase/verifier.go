package firebase

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultCertsURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"

var (
	// ErrInvalidToken is returned when the token is invalid
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when the token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrInvalidIssuer is returned when the token issuer is invalid
	ErrInvalidIssuer = errors.New("invalid issuer")

	// ErrInvalidAudience is returned when the token audience is invalid
	ErrInvalidAudience = errors.New("invalid audience")

	// ErrCertsFetchFailed is returned when the signing certs cannot be fetched
	ErrCertsFetchFailed = errors.New("failed to fetch signing certs")
)

// Claims represents the claims carried by a Firebase ID token
type Claims struct {
	jwt.RegisteredClaims
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

// Token represents a verified and decoded ID token
type Token struct {
	UID           string
	Email         string
	Name          string
	EmailVerified bool
	IssuedAt      time.Time
	ExpiresAt     time.Time
}

// TokenVerifier verifies Firebase ID tokens against the securetoken
// x509 signing certs published by Google.
type TokenVerifier struct {
	projectID  string
	certsURL   string
	httpClient *http.Client

	// Cache for parsed public keys, kid-keyed
	certsTTL time.Duration
	cacheMu  sync.RWMutex
	keyCache map[string]*rsa.PublicKey
	cacheExp time.Time
}

// Config holds configuration for TokenVerifier
type Config struct {
	ProjectID   string
	CertsURL    string
	CertsTTL    time.Duration
	HTTPTimeout time.Duration
}

// NewTokenVerifier creates a new Firebase ID token verifier
func NewTokenVerifier(config Config) *TokenVerifier {
	if config.CertsURL == "" {
		config.CertsURL = defaultCertsURL
	}
	if config.CertsTTL == 0 {
		config.CertsTTL = 1 * time.Hour
	}
	if config.HTTPTimeout == 0 {
		config.HTTPTimeout = 10 * time.Second
	}

	return &TokenVerifier{
		projectID: config.ProjectID,
		certsURL:  config.CertsURL,
		certsTTL:  config.CertsTTL,
		httpClient: &http.Client{
			Timeout: config.HTTPTimeout,
		},
		keyCache: make(map[string]*rsa.PublicKey),
	}
}

// VerifyIDToken verifies an ID token signature and standard claims and
// returns the decoded token. The raw token string is never included in
// returned errors.
func (v *TokenVerifier) VerifyIDToken(ctx context.Context, tokenString string) (*Token, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}

			kid, ok := token.Header["kid"].(string)
			if !ok {
				return nil, errors.New("kid header not found")
			}

			publicKey, err := v.getPublicKey(ctx, kid)
			if err != nil {
				return nil, fmt.Errorf("failed to get public key: %w", err)
			}

			return publicKey, nil
		},
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(v.issuer()),
		jwt.WithAudience(v.projectID),
	)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenInvalidIssuer):
			return nil, ErrInvalidIssuer
		case errors.Is(err, jwt.ErrTokenInvalidAudience):
			return nil, ErrInvalidAudience
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing sub claim", ErrInvalidToken)
	}

	decoded := &Token{
		UID:           claims.Subject,
		Email:         claims.Email,
		Name:          claims.Name,
		EmailVerified: claims.EmailVerified,
	}
	if claims.IssuedAt != nil {
		decoded.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		decoded.ExpiresAt = claims.ExpiresAt.Time
	}

	return decoded, nil
}

// issuer returns the expected token issuer for the configured project
func (v *TokenVerifier) issuer() string {
	return "https://securetoken.google.com/" + v.projectID
}

// getPublicKey returns the RSA public key for the given kid, refreshing
// the cert cache when it has expired.
func (v *TokenVerifier) getPublicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.cacheMu.RLock()
	if time.Now().Before(v.cacheExp) {
		if key, ok := v.keyCache[kid]; ok {
			v.cacheMu.RUnlock()
			return key, nil
		}
	}
	v.cacheMu.RUnlock()

	if err := v.refreshCerts(ctx); err != nil {
		return nil, err
	}

	v.cacheMu.RLock()
	defer v.cacheMu.RUnlock()

	key, ok := v.keyCache[kid]
	if !ok {
		return nil, fmt.Errorf("no signing cert for kid %q", kid)
	}
	return key, nil
}

// refreshCerts fetches the securetoken x509 certs and rebuilds the key cache
func (v *TokenVerifier) refreshCerts(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCertsFetchFailed, err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCertsFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", ErrCertsFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCertsFetchFailed, err)
	}

	// kid -> PEM-encoded x509 cert
	var certs map[string]string
	if err := json.Unmarshal(body, &certs); err != nil {
		return fmt.Errorf("%w: %v", ErrCertsFetchFailed, err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, pemCert := range certs {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemCert))
		if err != nil {
			return fmt.Errorf("%w: parsing cert %q: %v", ErrCertsFetchFailed, kid, err)
		}
		keys[kid] = key
	}

	v.cacheMu.Lock()
	v.keyCache = keys
	v.cacheExp = time.Now().Add(v.certsTTL)
	v.cacheMu.Unlock()

	return nil
}
