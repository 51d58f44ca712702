package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type sample struct {
	Email string `json:"email" binding:"required,email"`
	Files []struct {
		PublicID string `json:"public_id" binding:"required"`
	} `json:"files" binding:"dive"`
}

func bindBody(t *testing.T, body string) map[string]string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	Setup()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var dst sample
	return Bind(c, &dst)
}

func TestBindReportsFieldNames(t *testing.T) {
	fields := bindBody(t, `{"email":"not-an-email","files":[{"public_id":""}]}`)
	if fields == nil {
		t.Fatalf("expected validation errors")
	}
	if _, ok := fields["email"]; !ok {
		t.Fatalf("expected email error, got %v", fields)
	}
	if _, ok := fields["files[0].public_id"]; !ok {
		t.Fatalf("expected nested public_id error, got %v", fields)
	}
}

func TestBindSyntaxError(t *testing.T) {
	fields := bindBody(t, `{"email":`)
	if _, ok := fields["detail"]; !ok {
		t.Fatalf("expected detail for malformed JSON, got %v", fields)
	}
}

func TestBindOK(t *testing.T) {
	if fields := bindBody(t, `{"email":"a@b.co"}`); fields != nil {
		t.Fatalf("unexpected errors %v", fields)
	}
}
