package security

import (
	"testing"

	"github.com/peppone-choi/opensamguk-sub002/internal/shared/serverconfig"
)

func TestAward后ParseToken应还原subject(t *testing.T) {
	serverconfig.Conf.JWTSecret = "test-secret"

	token, err := Award("admin")
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "admin" {
		t.Fatalf("expect subject admin, got %q", claims.Subject)
	}
}

func TestParseToken_密钥不匹配应失败(t *testing.T) {
	serverconfig.Conf.JWTSecret = "secret-a"
	token, err := Award("admin")
	if err != nil {
		t.Fatalf("award: %v", err)
	}

	serverconfig.Conf.JWTSecret = "secret-b"
	if _, err := ParseToken(token); err == nil {
		t.Fatalf("expect signature mismatch error")
	}
}
