package utils

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42)
	if err != nil {
		t.Fatalf("ошибка выпуска токена: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ошибка разбора токена: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("в токене должен быть ID 42, получили %d", claims.UserID)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseToken("not-a-token"); err == nil {
		t.Error("мусорный токен должен отклоняться")
	}
	if _, err := ParseToken(""); err == nil {
		t.Error("пустой токен должен отклоняться")
	}
}
