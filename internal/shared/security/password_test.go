package security

import "testing"

func TestHashPassword_同一明文两次哈希不相同(t *testing.T) {
	first, err := HashPassword("SecurePass123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	second, err := HashPassword("SecurePass123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if first == second {
		t.Fatalf("哈希必须带随机盐")
	}
}

func TestVerifyPassword(t *testing.T) {
	hashed, err := HashPassword("SecurePass123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if !VerifyPassword("SecurePass123", hashed) {
		t.Fatalf("正确口令校验失败")
	}
	if VerifyPassword("WrongPass456", hashed) {
		t.Fatalf("错误口令不应通过")
	}
	if VerifyPassword("SecurePass123", "not-a-bcrypt-hash") {
		t.Fatalf("非法哈希不应通过")
	}
}
