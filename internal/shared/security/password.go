package security

import "golang.org/x/crypto/bcrypt"

// bcryptCost 固定成本因子。调高需要同步评估登录接口的延迟预算。
const bcryptCost = 12

// HashPassword 生成密码哈希。盐由 bcrypt 内部生成，同一明文两次哈希结果不同。
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword 校验明文与哈希是否匹配。只返回布尔，不区分失败原因，
// 避免给调用方泄漏口令信息的机会。
func VerifyPassword(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
