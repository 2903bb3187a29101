package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ScopeReports único alcance que concede la pasarela: lectura de informes.
const ScopeReports = "albaranes:read"

// Claims claims estándar más el consumidor interno (dashboard, servicio) y su alcance.
type Claims struct {
	jwt.RegisteredClaims
	Consumer string `json:"consumer"`
	Scope    string `json:"scope"`
}

// Generate genera un token firmado (HS256) para un consumidor interno.
func Generate(secret, consumer, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	if consumer == "" {
		return "", fmt.Errorf("jwt: consumidor vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   consumer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Consumer: consumer,
		Scope:    ScopeReports,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve el consumidor.
// Retorna error si el token es inválido, expirado, tiene firma incorrecta o no
// concede el alcance de lectura.
func Parse(secret, tokenString string) (consumer string, err error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("claims inválidos")
	}
	if claims.Scope != ScopeReports {
		return "", fmt.Errorf("alcance no permitido: %q", claims.Scope)
	}
	return claims.Consumer, nil
}
