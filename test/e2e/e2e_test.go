//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stemsi/rekamsehat-backend/internal/model"
	"github.com/stemsi/rekamsehat-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Runs against a live server backed by the Firestore emulator:
//
//	FIRESTORE_EMULATOR_HOST=localhost:8081 go test -tags e2e ./test/e2e/...
const (
	defaultBaseURL   = "http://localhost:8080/api/v1"
	defaultProjectID = "demo-rekamsehat"
	adminPass        = "password123"
	userPass         = "password123"
)

var (
	baseURL    string
	adminEmail string
	userEmail  string
	adminToken string
	userToken  string
	pendingID  string
	jenisID    string
	recordID   string
)

func TestMain(m *testing.M) {
	_ = godotenv.Load("../../.env")

	baseURL = os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	stamp := time.Now().UnixNano()
	adminEmail = fmt.Sprintf("e2e-admin-%d@example.com", stamp)
	userEmail = fmt.Sprintf("e2e-user-%d@example.com", stamp)

	if err := setupInitialAdmin(); err != nil {
		fmt.Printf("Setup failed: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// setupInitialAdmin writes a super admin straight into Firestore, the same
// way cmd/create-admin does.
func setupInitialAdmin() error {
	ctx := context.Background()
	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	if projectID == "" {
		projectID = defaultProjectID
	}
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return fmt.Errorf("firestore connect: %w", err)
	}
	defer client.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return repository.NewUserRepository(client).Create(ctx, &model.User{
		UID:          uuid.NewString(),
		Nama:         "E2E Admin",
		Email:        adminEmail,
		PasswordHash: string(hash),
		Role:         model.RoleSuperAdmin,
		Lembaga:      "E2E",
		CreatedAt:    time.Now(),
	})
}

func TestE2EFlow(t *testing.T) {
	t.Run("AdminLogin", func(t *testing.T) {
		adminToken = login(t, adminEmail, adminPass)
	})

	t.Run("Register", func(t *testing.T) {
		resp, err := post("/auth/register", model.RegisterRequest{
			Nama:     "E2E User",
			Email:    userEmail,
			Password: userPass,
			Lembaga:  "Kompi A",
		}, "")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}

		var body struct {
			Data struct {
				PendingUser struct {
					ID string `json:"id"`
				} `json:"pending_user"`
			} `json:"data"`
		}
		decodeJSON(t, resp, &body)
		pendingID = body.Data.PendingUser.ID
		if pendingID == "" {
			t.Fatal("pending id missing")
		}
	})

	t.Run("PendingLoginRejected", func(t *testing.T) {
		resp, err := post("/auth/login", model.LoginRequest{Email: userEmail, Password: userPass}, "")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("expected 403 for pending account, got %d: %s", resp.StatusCode, readBody(resp))
		}
	})

	t.Run("AcceptPending", func(t *testing.T) {
		resp, err := post("/admin/pending-users/"+pendingID+"/accept", nil, adminToken)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}
	})

	t.Run("UserLogin", func(t *testing.T) {
		userToken = login(t, userEmail, userPass)
	})

	t.Run("UserCannotReachAdmin", func(t *testing.T) {
		resp, err := get("/admin/users", userToken)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", resp.StatusCode)
		}
	})

	t.Run("CreateJenisPenyakit", func(t *testing.T) {
		resp, err := post("/admin/jenis-penyakit", model.JenisPenyakitRequest{
			NamaPenyakit: fmt.Sprintf("Gula Darah Puasa %d", time.Now().UnixNano()),
			Antisipasi:   []string{"Kurangi gula"},
		}, adminToken)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}

		var body struct {
			Data struct {
				JenisPenyakit struct {
					ID string `json:"id"`
				} `json:"jenis_penyakit"`
			} `json:"data"`
		}
		decodeJSON(t, resp, &body)
		jenisID = body.Data.JenisPenyakit.ID
	})

	t.Run("CreateRecord", func(t *testing.T) {
		uid := currentUserID(t, userToken)
		resp, err := post("/admin/penyakit", model.DataPenyakitRequest{
			UserID:             uid,
			JenisPenyakitID:    jenisID,
			HasilPemeriksaan:   95,
			Satuan:             "mg/dL",
			TanggalPemeriksaan: time.Now().Format("2006-01-02"),
		}, adminToken)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}

		var body struct {
			Data struct {
				DataPenyakit model.DataPenyakit `json:"data_penyakit"`
			} `json:"data"`
		}
		decodeJSON(t, resp, &body)
		recordID = body.Data.DataPenyakit.ID
		if body.Data.DataPenyakit.Status == "" {
			t.Errorf("status should be derived server-side")
		}
	})

	t.Run("UserSeesOwnRecord", func(t *testing.T) {
		resp, err := get("/me/penyakit", userToken)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}

		var body struct {
			Data []model.DataPenyakit `json:"data"`
		}
		decodeJSON(t, resp, &body)
		found := false
		for _, d := range body.Data {
			if d.ID == recordID {
				found = true
			}
		}
		if !found {
			t.Errorf("record %s missing from own list", recordID)
		}
	})

	t.Run("DeleteJenisInUse", func(t *testing.T) {
		resp, err := del("/admin/jenis-penyakit/"+jenisID, adminToken)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusConflict {
			t.Errorf("expected 409 while records reference the jenis, got %d", resp.StatusCode)
		}
	})

	t.Run("Logout", func(t *testing.T) {
		resp, err := post("/auth/logout", nil, userToken)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()

		me, err := get("/auth/me", userToken)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer me.Body.Close()
		// Revocation needs Redis; without it the token stays valid.
		if me.StatusCode != http.StatusUnauthorized && me.StatusCode != http.StatusOK {
			t.Errorf("unexpected status after logout %d", me.StatusCode)
		}
	})
}

// Helpers

func login(t *testing.T, email, password string) string {
	t.Helper()
	resp, err := post("/auth/login", model.LoginRequest{Email: email, Password: password}, "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
	}

	var body struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	decodeJSON(t, resp, &body)
	if body.Data.Token == "" {
		t.Fatal("token missing")
	}
	return body.Data.Token
}

func currentUserID(t *testing.T, token string) string {
	t.Helper()
	resp, err := get("/auth/me", token)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Data struct {
			User model.User `json:"user"`
		} `json:"data"`
	}
	decodeJSON(t, resp, &body)
	return body.Data.User.UID
}

func post(path string, body interface{}, token string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBytes)
	}
	return do(http.MethodPost, path, bodyReader, token)
}

func get(path string, token string) (*http.Response, error) {
	return do(http.MethodGet, path, nil, token)
}

func del(path string, token string) (*http.Response, error) {
	return do(http.MethodDelete, path, nil, token)
}

func do(method, path string, body io.Reader, token string) (*http.Response, error) {
	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

func readBody(resp *http.Response) string {
	b, _ := io.ReadAll(resp.Body)
	return string(b)
}

func decodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("json decode: %v", err)
	}
}
