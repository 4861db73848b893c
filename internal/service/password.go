package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Алфавит временных паролей: латиница, цифры и спецсимволы.
const passwordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*"

// DefaultPasswordLength — длина временного пароля по умолчанию.
const DefaultPasswordLength = 12

// GeneratePassword генерирует криптостойкий временный пароль.
// Открытый текст отдаётся вызывающему ровно один раз и нигде не хранится.
func GeneratePassword(length int) (string, error) {
	if length <= 0 {
		length = DefaultPasswordLength
	}

	password := make([]byte, length)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range password {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		password[i] = passwordAlphabet[n.Int64()]
	}

	return string(password), nil
}
