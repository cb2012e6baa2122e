package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash equals plaintext")
	}

	if !CheckPassword("s3cret-pass", hash) {
		t.Error("expected matching password to verify")
	}
	if CheckPassword("wrong", hash) {
		t.Error("expected wrong password to fail")
	}
	if CheckPassword("s3cret-pass", "not-a-bcrypt-hash") {
		t.Error("expected malformed hash to fail")
	}

	other, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if other == hash {
		t.Error("expected distinct salts")
	}
}

func TestUnknownUserHash(t *testing.T) {
	hash := UnknownUserHash()
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("Cost: %v", err)
	}
	if cost != PasswordHashCost {
		t.Errorf("cost = %d, want %d", cost, PasswordHashCost)
	}
	if UnknownUserHash() != hash {
		t.Error("expected the hash to be built once")
	}
	if CheckPassword("unknown-user", "") || CheckPassword("", hash) {
		t.Error("expected empty inputs to fail")
	}
}
