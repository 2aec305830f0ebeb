// Command jwks-to-pem prints the auth provider's signing key as a PEM public
// key, suitable for JWT_SECRET when tokens are signed with ES256 or RS256.
package main

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"os"
	"time"
)

type JWKS struct {
	Keys []JWK `json:"keys"`
}

type JWK struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y"`
	N   string `json:"n"`
	E   string `json:"e"`
	Alg string `json:"alg"`
	Use string `json:"use"`
}

func main() {
	url := flag.String("url", envOr("JWKS_URL", "http://127.0.0.1:54321/auth/v1/.well-known/jwks.json"), "JWKS endpoint")
	kid := flag.String("kid", "", "key id to export (default: first signing key)")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(*url)
	if err != nil {
		fail("Error fetching JWKS: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		fail("Error fetching JWKS: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fail("Error reading response: %v", err)
	}

	var jwks JWKS
	if err := json.Unmarshal(body, &jwks); err != nil {
		fail("Error parsing JWKS: %v", err)
	}

	key, err := selectKey(jwks, *kid)
	if err != nil {
		fail("%v", err)
	}
	out, err := jwkToPEM(key)
	if err != nil {
		fail("%v", err)
	}
	fmt.Print(string(out))
}

func selectKey(jwks JWKS, kid string) (JWK, error) {
	for _, k := range jwks.Keys {
		if k.Use != "" && k.Use != "sig" {
			continue
		}
		if kid == "" || k.Kid == kid {
			return k, nil
		}
	}
	if kid != "" {
		return JWK{}, fmt.Errorf("no signing key with kid %q in JWKS", kid)
	}
	return JWK{}, errors.New("no signing keys found in JWKS")
}

// jwkToPEM encodes an EC (P-256) or RSA JWK as a PKIX PEM block.
func jwkToPEM(key JWK) ([]byte, error) {
	var pub any
	switch key.Kty {
	case "EC":
		if key.Crv != "P-256" {
			return nil, fmt.Errorf("unsupported EC curve %q", key.Crv)
		}
		x, err := base64.RawURLEncoding.DecodeString(key.X)
		if err != nil {
			return nil, fmt.Errorf("decode x coordinate: %w", err)
		}
		y, err := base64.RawURLEncoding.DecodeString(key.Y)
		if err != nil {
			return nil, fmt.Errorf("decode y coordinate: %w", err)
		}
		pub = &ecdsa.PublicKey{
			Curve: elliptic.P256(),
			X:     new(big.Int).SetBytes(x),
			Y:     new(big.Int).SetBytes(y),
		}
	case "RSA":
		n, err := base64.RawURLEncoding.DecodeString(key.N)
		if err != nil {
			return nil, fmt.Errorf("decode modulus: %w", err)
		}
		e, err := base64.RawURLEncoding.DecodeString(key.E)
		if err != nil {
			return nil, fmt.Errorf("decode exponent: %w", err)
		}
		pub = &rsa.PublicKey{
			N: new(big.Int).SetBytes(n),
			E: int(new(big.Int).SetBytes(e).Int64()),
		}
	default:
		return nil, fmt.Errorf("unsupported key type %q", key.Kty)
	}

	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("marshal public key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
