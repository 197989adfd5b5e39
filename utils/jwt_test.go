package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tok, err := GenerateToken("boss", "admin", "s3cret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	claims, err := ParseToken(tok, "s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if claims.Username != "boss" || claims.Role != "admin" || claims.Subject != "boss" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestParseTokenRejects(t *testing.T) {
	tok, err := GenerateToken("boss", "admin", "s3cret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken(tok, "other"); err == nil {
		t.Fatalf("wrong secret accepted")
	}
	expired, err := GenerateToken("boss", "admin", "s3cret", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken(expired, "s3cret"); err == nil {
		t.Fatalf("expired token accepted")
	}
}
