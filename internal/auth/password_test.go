package auth

import (
	"errors"
	"testing"

	"github.com/your-org/emoup/internal/models"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if err := CheckPassword(hash, "correct horse battery staple"); err != nil {
		t.Errorf("CheckPassword with right password: %v", err)
	}

	err = CheckPassword(hash, "wrong password")
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestCheckPasswordGarbageHash(t *testing.T) {
	err := CheckPassword([]byte("not a bcrypt hash"), "anything")
	if err == nil {
		t.Fatal("want error for malformed hash")
	}
	if errors.Is(err, models.ErrInvalidCredentials) {
		t.Error("malformed hash should not read as a credential mismatch")
	}
}
