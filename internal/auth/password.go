package auth

import "golang.org/x/crypto/bcrypt"

// bcrypt 代价因子固定为 12
const bcryptCost = 12

// HashPassword 生成带盐的单向哈希
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword 常数时间比较明文与存储哈希
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
