package auth

import (
	"time"

	"jobtracker/config"
	"jobtracker/internal/domain/service"
	"jobtracker/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret []byte // Secret key for signing access tokens.
	issuer       string // Optional "iss" claim; enforced on validation when set.
	now          func() time.Time
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	var issuer string
	if cfg.Auth != nil {
		issuer = cfg.Auth.Issuer
	}

	return &jwtService{
		accessSecret: []byte(cfg.SecretKey.Access),
		issuer:       issuer,
		now:          time.Now,
	}, nil
}

// GenerateToken signs an HS256 access token whose subject is the user ID.
func (s *jwtService) GenerateToken(userID uuid.UUID, ttl time.Duration) (*service.IssuedToken, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(ttl)

	claims := &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.accessSecret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign access token")
	}

	return &service.IssuedToken{
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateToken parses the token, pinning the algorithm to HS256 and requiring an expiry.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.accessSecret, nil
	}, opts...)
	if err != nil {
		return nil, errors.Wrap(service.ErrInvalidToken, err.Error())
	}
	if !token.Valid {
		return nil, service.ErrInvalidToken
	}

	if _, err := claims.UserID(); err != nil {
		return nil, err
	}

	return claims, nil
}
