package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewSecureToken — случайный hex-токен для одноразовых ссылок
// (верификация почты, сброс пароля).
func NewSecureToken(nBytes int) (string, error) {
	if nBytes <= 0 {
		nBytes = 32 // 256 бит по умолчанию
	}
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
