package auth

import "testing"

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("password1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "password1" {
		t.Fatal("hash must not equal plaintext")
	}
	if !CheckPassword(hash, "password1") {
		t.Error("CheckPassword: expected match")
	}
	if CheckPassword(hash, "password2") {
		t.Error("CheckPassword: expected mismatch")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("password1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	b, err := HashPassword("password1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if a == b {
		t.Error("two hashes of the same password should differ")
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	if CheckPassword("", "password1") {
		t.Error("empty hash must not match")
	}
	if CheckPassword("not-a-bcrypt-hash", "password1") {
		t.Error("malformed hash must not match")
	}
}
