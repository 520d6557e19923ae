package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !CheckPassword("s3cret-pass", hash) {
		t.Error("correct password should verify")
	}
	if CheckPassword("wrong-pass", hash) {
		t.Error("wrong password should not verify")
	}
}

func TestCheckPasswordInvalidHash(t *testing.T) {
	if CheckPassword("anything", "not-a-bcrypt-hash") {
		t.Error("invalid hash should not verify")
	}
}
