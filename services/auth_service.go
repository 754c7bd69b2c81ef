package services

import (
	"context"
	"strings"

	"github.com/Berikbol/ring-system/utils"
)

// AuthService проверяет учётные данные оператора турнира. Оператор один,
// хранится только bcrypt-хэш пароля; токен выписывает HTTP-слой.
type AuthService interface {
	Login(ctx context.Context, name, password string) error
}

type authService struct {
	operatorName string
	passwordHash string
}

func NewAuthService(operatorName, passwordHash string) AuthService {
	return &authService{
		operatorName: operatorName,
		passwordHash: passwordHash,
	}
}

func (s *authService) Login(_ context.Context, name, password string) error {
	if !strings.EqualFold(strings.TrimSpace(name), s.operatorName) {
		return ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, s.passwordHash) {
		return ErrInvalidCredentials
	}
	return nil
}
