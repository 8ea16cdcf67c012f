package managers

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"adoption-server/internal/schemas"
	"adoption-server/internal/utils"
)

const (
	issuer             = "adopt-a-school.org"
	defaultExpiryHours = 168
	bearerPrefix       = "Bearer "
)

// JWTMgr defines the interface for bearer-token management.
// It issues and validates tokens and provides the gin middleware gating
// protected and admin-only routes.
type JWTMgr interface {
	GenerateJWT(userId, role string) (string, error)
	ValidateJWT(tokenString string) (jwt.Claims, error)
	JWTMiddleware() gin.HandlerFunc
	RequireAdmin() gin.HandlerFunc
}

// JWTManager handles JWT generation, signing, and validation.
// Tokens are signed with EdDSA over an ed25519 key pair and expire after the
// configured duration. Validation additionally consults the revocation store.
type JWTManager struct {
	privateKey    ed25519.PrivateKey
	publicKey     ed25519.PublicKey
	expiry        time.Duration
	revocationMgr RevocationMgr
}

// NewJWTManager creates a new JWTManager with the given key pair and expiry.
func NewJWTManager(privateKey ed25519.PrivateKey, publicKey ed25519.PublicKey, expiry time.Duration, revocationMgr RevocationMgr) JWTMgr {
	return &JWTManager{
		privateKey:    privateKey,
		publicKey:     publicKey,
		expiry:        expiry,
		revocationMgr: revocationMgr,
	}
}

// NewJWTManagerFromFile creates a new JWTManager from the key pair at
// KEY_PAIR_PATH, generating and persisting a fresh pair on first boot.
// The token expiry is read from TOKEN_EXPIRY_HOURS and defaults to 7 days.
func NewJWTManagerFromFile(revocationMgr RevocationMgr) (JWTMgr, error) {
	path := os.Getenv("KEY_PAIR_PATH")

	privateKey, publicKey, err := loadKeyPair(path)
	if err != nil {
		// No key yet for initial setup, generate a new key pair
		privateKey, publicKey, err = generateKeyPair(path)
		if err != nil {
			return nil, err
		}
	}

	return NewJWTManager(privateKey, publicKey, tokenExpiry(), revocationMgr), nil
}

func tokenExpiry() time.Duration {
	hours, err := strconv.Atoi(os.Getenv("TOKEN_EXPIRY_HOURS"))
	if err != nil || hours <= 0 {
		hours = defaultExpiryHours
	}
	return time.Duration(hours) * time.Hour
}

// generateClaims generates the standard JWT claims binding a user identity and role.
func (jm *JWTManager) generateClaims(userId, role string) jwt.Claims {
	return jwt.MapClaims{
		"iss":  issuer,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(jm.expiry).Unix(),
		"sub":  userId,
		"role": role,
	}
}

// GenerateJWT generates a new signed JWT for the given user and role.
func (jm *JWTManager) GenerateJWT(userId, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, jm.generateClaims(userId, role))
	return token.SignedString(jm.privateKey)
}

// ValidateJWT validates the given JWT and returns the claims if valid.
func (jm *JWTManager) ValidateJWT(tokenString string) (jwt.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Verify the signing method
		if token.Method.Alg() != jwt.SigningMethodEdDSA.Alg() {
			return nil, fmt.Errorf("invalid signing method")
		}

		return jm.publicKey, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}

	return token.Claims, nil
}

// JWTMiddleware authenticates protected routes. It resolves the bearer token
// to a user identity, rejects invalid, expired, and revoked tokens and stores
// the claims and the raw token in the request context.
func (jm *JWTManager) JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			utils.AbortWithError(c, schemas.Unauthorized, http.StatusUnauthorized, errors.New("missing bearer token"))
			return
		}

		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)
		claims, err := jm.ValidateJWT(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				utils.AbortWithError(c, schemas.TokenExpired, http.StatusUnauthorized, err)
				return
			}
			utils.AbortWithError(c, schemas.Unauthorized, http.StatusUnauthorized, err)
			return
		}

		if jm.revocationMgr.IsRevoked(tokenString) {
			utils.AbortWithError(c, schemas.TokenRevoked, http.StatusUnauthorized, errors.New("token revoked"))
			return
		}

		c.Set(utils.ClaimsKey.String(), claims.(jwt.MapClaims))
		c.Set(utils.JWTTokenKey.String(), tokenString)
		c.Next()
	}
}

// RequireAdmin gates admin-only routes. It must run after JWTMiddleware.
func (jm *JWTManager) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.Value(utils.ClaimsKey.String()).(jwt.MapClaims)
		if !ok {
			utils.AbortWithError(c, schemas.Unauthorized, http.StatusUnauthorized, errors.New("missing claims"))
			return
		}

		if role, _ := claims["role"].(string); role != schemas.RoleAdmin {
			utils.AbortWithError(c, schemas.Forbidden, http.StatusForbidden, errors.New("admin role required"))
			return
		}

		c.Next()
	}
}

// generateKeyPair generates a new key pair and saves it to a file.
func generateKeyPair(path string) (ed25519.PrivateKey, ed25519.PublicKey, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, err
	}

	// Save the new key pair to a file for persistence
	if err = saveKeyPair(privateKey, publicKey, path); err != nil {
		return nil, nil, err
	}

	return privateKey, publicKey, nil
}

// saveKeyPair saves the key pair to the specified file.
func saveKeyPair(privateKey ed25519.PrivateKey, publicKey ed25519.PublicKey, path string) error {
	keyPairBytes := append(privateKey, publicKey...)
	return os.WriteFile(path, keyPairBytes, 0600)
}

// loadKeyPair loads the key pair from the specified file.
func loadKeyPair(path string) (ed25519.PrivateKey, ed25519.PublicKey, error) {
	keyPairBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	// The key pair is the concatenation of private and public keys
	if len(keyPairBytes) != ed25519.PrivateKeySize+ed25519.PublicKeySize {
		return nil, nil, fmt.Errorf("invalid key pair format")
	}

	return keyPairBytes[:ed25519.PrivateKeySize], keyPairBytes[ed25519.PrivateKeySize:], nil
}
