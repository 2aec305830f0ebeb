package util

import (
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/dgrijalva/jwt-go"
)

// Claims carried by access tokens issued by the auth provider.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.StandardClaims
}

var errAlgorithmMismatch = errors.New("token algorithm does not match the configured key")

// ValidateJWT verifies the token signature and expiry. keyMaterial is either
// a shared HMAC secret or a PEM public key for RSA/ECDSA tokens. The key
// material decides which algorithms are accepted: a PEM key never verifies
// an HMAC token, and a shared secret never verifies an asymmetric one.
func ValidateJWT(tokenString string, keyMaterial string) (*Claims, error) {
	keyFunc, err := keyFuncFor(keyMaterial)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, keyFunc)
	if err != nil {
		// jwt-go's ValidationError does not unwrap, so surface its cause.
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Inner != nil {
			return nil, fmt.Errorf("failed to validate token: %w", ve.Inner)
		}
		return nil, fmt.Errorf("failed to validate token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

func keyFuncFor(keyMaterial string) (jwt.Keyfunc, error) {
	if block, _ := pem.Decode([]byte(keyMaterial)); block == nil {
		secret := []byte(keyMaterial)
		return func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("%w: %v", errAlgorithmMismatch, token.Header["alg"])
			}
			return secret, nil
		}, nil
	}

	if rsaKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(keyMaterial)); err == nil {
		return func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("%w: %v", errAlgorithmMismatch, token.Header["alg"])
			}
			return rsaKey, nil
		}, nil
	}
	ecKey, err := jwt.ParseECPublicKeyFromPEM([]byte(keyMaterial))
	if err != nil {
		return nil, fmt.Errorf("failed to parse PEM public key: %w", err)
	}
	return func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, fmt.Errorf("%w: %v", errAlgorithmMismatch, token.Header["alg"])
		}
		return ecKey, nil
	}, nil
}
