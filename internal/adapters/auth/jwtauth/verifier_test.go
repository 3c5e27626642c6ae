package jwtauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"myvet/internal/ports/auth"
)

func TestIssueVerify(t *testing.T) {
	v := New("s3cret", time.Hour)

	tok, err := v.Issue(auth.Claims{UserID: "u1", Email: "u1@myvet.app", Role: auth.RoleStaff})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	c, err := v.Verify(context.Background(), tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if c.UserID != "u1" || c.Email != "u1@myvet.app" || !c.IsStaff() {
		t.Fatalf("unexpected claims: %+v", c)
	}
}

func TestVerify_DefaultRoleIsOwner(t *testing.T) {
	v := New("s3cret", time.Hour)
	tok, _ := v.Issue(auth.Claims{UserID: "u1"})

	c, err := v.Verify(context.Background(), tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if c.Role != auth.RoleOwner {
		t.Fatalf("expected owner role, got %q", c.Role)
	}
}

func TestVerify_RejectsForeignSecret(t *testing.T) {
	tok, _ := New("other", time.Hour).Issue(auth.Claims{UserID: "u1"})

	if _, err := New("s3cret", time.Hour).Verify(context.Background(), tok); err == nil {
		t.Fatalf("expected error for token signed with another secret")
	}
}

func TestVerify_RejectsExpired(t *testing.T) {
	v := New("s3cret", time.Minute)
	v.now = func() time.Time { return time.Now().Add(-time.Hour) }
	tok, err := v.Issue(auth.Claims{UserID: "u1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	v.now = time.Now
	_, err = v.Verify(context.Background(), tok)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected expired token, got %v", err)
	}
}

func TestVerify_RejectsNoneAlg(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer:    Issuer,
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := New("s3cret", time.Hour).Verify(context.Background(), tok); err == nil {
		t.Fatalf("expected alg none to be rejected")
	}
}

func TestNotConfigured(t *testing.T) {
	v := New(" ", time.Hour)
	if _, err := v.Issue(auth.Claims{UserID: "u1"}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected not configured, got %v", err)
	}
	if _, err := v.Verify(context.Background(), "x"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected not configured, got %v", err)
	}
}
