package auth

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/hangman/apps/go-server/internal/sqldb"
)

func newService(t *testing.T) *Service {
	t.Helper()
	db, err := sqldb.Open(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := sqldb.Migrate(db); err != nil {
		t.Fatal(err)
	}
	s := NewService(db, "test_secret", time.Hour)
	s.cost = bcrypt.MinCost
	return s
}

func TestValidateSignup(t *testing.T) {
	validateTests := []struct {
		username string
		password string
		wantOk   bool
	}{
		{username: "ab", password: "password1"},
		{username: "this_name_is_far_too_long_ok", password: "password1"},
		{username: "bad name", password: "password1"},
		{username: "alice", password: "short"},
		{username: "alice", password: "password1", wantOk: true},
		{username: "Bob_42", password: "correct horse", wantOk: true},
	}
	for i, test := range validateTests {
		err := validateSignup(test.username, test.password)
		if (err == nil) != test.wantOk {
			t.Errorf("Test %v: wanted ok=%v, got error %v", i, test.wantOk, err)
		}
	}
}

func TestSignupAndLogin(t *testing.T) {
	s := newService(t)
	u, err := s.Signup("  alice ", "password1")
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	if u.Username != "alice" || u.ID == "" {
		t.Errorf("unexpected user %+v", u)
	}
	if _, err := s.Signup("ALICE", "password2"); err != ErrUsernameTaken {
		t.Errorf("wanted ErrUsernameTaken, got %v", err)
	}
	if _, err := s.Login("alice", "wrong-password"); err != ErrInvalidCredentials {
		t.Errorf("wanted ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.Login("nobody", "password1"); err != ErrInvalidCredentials {
		t.Errorf("wanted ErrInvalidCredentials, got %v", err)
	}
	got, err := s.Login("Alice", "password1")
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("wanted id %v, got %v", u.ID, got.ID)
	}
}

func TestSignAndVerify(t *testing.T) {
	s := newService(t)
	u, err := s.Signup("bob", "password1")
	if err != nil {
		t.Fatal(err)
	}
	tok, exp, err := s.Sign(u)
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Errorf("expiry %v not in the future", exp)
	}
	got, err := s.Verify(tok)
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("wanted user %v, got %v", u.ID, got.ID)
	}

	other := NewService(s.db, "other_secret", time.Hour)
	if _, err := other.Verify(tok); err != ErrInvalidToken {
		t.Errorf("wanted ErrInvalidToken for wrong secret, got %v", err)
	}
	if _, err := s.Verify("garbage"); err != ErrInvalidToken {
		t.Errorf("wanted ErrInvalidToken for garbage, got %v", err)
	}

	expired := NewService(s.db, "test_secret", -time.Minute)
	old, _, err := expired.Sign(u)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Verify(old); err != ErrInvalidToken {
		t.Errorf("wanted ErrInvalidToken for expired token, got %v", err)
	}
}

func TestBearerOrCookie(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if got := BearerOrCookie(r, "tok"); got != "" {
		t.Errorf("wanted empty token, got %q", got)
	}
	r.AddCookie(&http.Cookie{Name: "tok", Value: "from-cookie"})
	if got := BearerOrCookie(r, "tok"); got != "from-cookie" {
		t.Errorf("wanted cookie token, got %q", got)
	}
	r.Header.Set("Authorization", "Bearer from-header")
	if got := BearerOrCookie(r, "tok"); got != "from-header" {
		t.Errorf("wanted header token, got %q", got)
	}
}

func TestGenID(t *testing.T) {
	a, b := GenID(), GenID()
	if len(a) != 22 || a == b {
		t.Errorf("unexpected ids %q %q", a, b)
	}
}
