package handlers

import (
	"net/http"
	"time"

	"github.com/Berikbol/ring-system/services"
	"github.com/golang-jwt/jwt/v4"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	service   services.AuthService
	jwtSecret string
}

func NewAuthHandler(service services.AuthService, jwtSecret string) *AuthHandler {
	return &AuthHandler{service: service, jwtSecret: jwtSecret}
}

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Login проверяет учётные данные оператора и выписывает HS256-токен.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input loginRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.service.Login(r.Context(), input.Name, input.Password); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": input.Name,
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"token": signed}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
