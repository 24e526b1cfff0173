package token_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ErlanBelekov/grocery-api/internal/domain"
	"github.com/ErlanBelekov/grocery-api/internal/token"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "token-test-secret-at-least-32-chars!"

func newService(accessTTL, refreshTTL time.Duration) *token.Service {
	return token.NewService([]byte(testSecret), accessTTL, refreshTTL)
}

func TestIssue_BothTokensVerifyWithSameClaims(t *testing.T) {
	svc := newService(time.Hour, 7*24*time.Hour)

	pair, err := svc.Issue(42, "milk@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Fatal("access and refresh tokens must differ")
	}

	access, err := svc.Verify(pair.AccessToken)
	if err != nil {
		t.Fatalf("verify access: %v", err)
	}
	refresh, err := svc.Verify(pair.RefreshToken)
	if err != nil {
		t.Fatalf("verify refresh: %v", err)
	}

	for name, c := range map[string]*token.Claims{"access": access, "refresh": refresh} {
		if c.UserID != 42 || c.Email != "milk@example.com" || c.Subject != "42" {
			t.Errorf("%s claims = %+v", name, c)
		}
	}
	if !refresh.ExpiresAt.After(access.ExpiresAt.Time) {
		t.Errorf("refresh expiry %v should be after access expiry %v", refresh.ExpiresAt, access.ExpiresAt)
	}
	if !access.IssuedAt.Equal(refresh.IssuedAt.Time) {
		t.Error("tokens issued together should share issuedAt")
	}
}

func TestVerify_Expired_ReturnsErrTokenExpired(t *testing.T) {
	svc := newService(-time.Minute, time.Hour)

	pair, err := svc.Issue(1, "a@b.co")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = svc.Verify(pair.AccessToken)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("want ErrTokenExpired, got %v", err)
	}
}

func TestVerify_DifferentSecret_ReturnsErrTokenInvalid(t *testing.T) {
	other := token.NewService([]byte("another-secret-that-is-32-chars!!"), time.Hour, time.Hour)
	pair, err := other.Issue(1, "a@b.co")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = newService(time.Hour, time.Hour).Verify(pair.AccessToken)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("want ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_Malformed_ReturnsErrTokenInvalid(t *testing.T) {
	for _, raw := range []string{"", "not.a.jwt", "abc", strings.Repeat("x", 300)} {
		_, err := newService(time.Hour, time.Hour).Verify(raw)
		if !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("Verify(%q) = %v, want ErrTokenInvalid", raw, err)
		}
	}
}

func TestVerify_NoneAlgorithm_Rejected(t *testing.T) {
	claims := token.Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = newService(time.Hour, time.Hour).Verify(raw)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("want ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_MissingExpiry_Rejected(t *testing.T) {
	claims := token.Claims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{Subject: "1"}}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = newService(time.Hour, time.Hour).Verify(raw)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("want ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_MissingSubject_Rejected(t *testing.T) {
	claims := token.Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = newService(time.Hour, time.Hour).Verify(raw)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("want ErrTokenInvalid, got %v", err)
	}
}

func TestExtractBearer(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr error
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"", "", domain.ErrAuthHeaderMissing},
		{"Bearer", "", domain.ErrAuthHeaderMalformed},
		{"Bearer ", "", domain.ErrAuthHeaderMalformed},
		{"bearer abc", "", domain.ErrAuthHeaderMalformed},
		{"BEARER abc", "", domain.ErrAuthHeaderMalformed},
		{"Basic dXNlcjpwYXNz", "", domain.ErrAuthHeaderMalformed},
		{"Bearer abc def", "", domain.ErrAuthHeaderMalformed},
		{"Bearer  abc", "", domain.ErrAuthHeaderMalformed},
		{"abc", "", domain.ErrAuthHeaderMalformed},
	}

	for _, tt := range tests {
		got, err := token.ExtractBearer(tt.header)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ExtractBearer(%q) err = %v, want %v", tt.header, err, tt.wantErr)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ExtractBearer(%q) = %q, %v; want %q", tt.header, got, err, tt.want)
		}
	}
}
