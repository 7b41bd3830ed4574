package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJWTRoundtrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("admin-123")
	if err != nil {
		t.Fatalf("GenerateJWT returned %v", err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT returned %v", err)
	}
	if claims["admin_id"] != "admin-123" || claims["role"] != "admin" {
		t.Fatalf("claims = %v", claims)
	}
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := GenerateJWT("admin-123")
	if err != nil {
		t.Fatalf("GenerateJWT returned %v", err)
	}

	t.Setenv("JWT_SECRET", "different-secret")
	if _, err := ValidateJWT(token); err == nil {
		t.Fatal("token signed with another secret must not validate")
	}
}

func TestIsAdminMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := IsAdmin(next)

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/admin/comments", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/admin/comments", nil)
		r.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("valid admin token", func(t *testing.T) {
		token, err := GenerateJWT("admin-123")
		if err != nil {
			t.Fatalf("GenerateJWT returned %v", err)
		}

		r := httptest.NewRequest("GET", "/admin/comments", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	})
}

func TestAdminIDFromRequest(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("admin-123")
	if err != nil {
		t.Fatalf("GenerateJWT returned %v", err)
	}

	r := httptest.NewRequest("POST", "/admin/block-rules", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	adminID, err := AdminIDFromRequest(r)
	if err != nil {
		t.Fatalf("AdminIDFromRequest returned %v", err)
	}
	if adminID != "admin-123" {
		t.Fatalf("adminID = %q, want admin-123", adminID)
	}

	r.Header.Del("Authorization")
	if _, err := AdminIDFromRequest(r); err == nil {
		t.Fatal("missing header must fail")
	}
}
