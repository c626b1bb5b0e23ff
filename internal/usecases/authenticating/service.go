package authenticating

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-reconciler-api/internal/config"
	"github.com/vfg2006/campaign-reconciler-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrInvalidToken       = errors.New("token inválido")
)

// Authenticator autentica o operador da API administrativa. Não há tabela
// de usuários: a identidade é um único operador configurado por ambiente
// (usuário + hash bcrypt da senha).
type Authenticator interface {
	Login(username, password string) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	cfg *config.Config
}

func NewService(cfg *config.Config) Authenticator {
	return &Service{
		cfg: cfg,
	}
}

// Login valida as credenciais do operador e emite um token JWT de 24h
func (s *Service) Login(username, password string) (string, error) {
	if username != s.cfg.Auth.OperatorUser {
		logrus.WithField("username", username).Warn("auth: unknown operator")
		return "", ErrInvalidCredentials
	}

	if s.cfg.Auth.OperatorPasswordHash == "" {
		return "", errors.New("hash de senha do operador não configurado")
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(s.cfg.Auth.OperatorPasswordHash),
		[]byte(password),
	); err != nil {
		logrus.WithField("username", username).Warn("auth: wrong password")
		return "", ErrInvalidCredentials
	}

	return s.generateToken(username)
}

func (s *Service) generateToken(username string) (string, error) {
	claims := &domain.Claims{
		Username: username,
		Role:     domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.cfg.Auth.Secret))
	if err != nil {
		return "", errors.Wrap(err, "erro ao assinar token")
	}

	return signed, nil
}

// ValidateToken verifica assinatura e expiração, retornando as claims
func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
