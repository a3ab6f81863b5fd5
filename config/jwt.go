package config

import (
	"log"
	"os"
)

var jwtSecret []byte

// InitJWT loads the token signing secret. There is deliberately no
// fallback value: a process without JWT_SECRET must not serve traffic.
func InitJWT() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	jwtSecret = []byte(secret)
}

// JWTSecret returns the signing key loaded at startup.
func JWTSecret() []byte {
	return jwtSecret
}
