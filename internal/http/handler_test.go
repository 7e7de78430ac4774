package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aircomp/propostas-service/internal/auth"
	"github.com/aircomp/propostas-service/internal/config"
	"github.com/aircomp/propostas-service/internal/db"
	"github.com/aircomp/propostas-service/internal/http/middleware"
	"github.com/aircomp/propostas-service/internal/repository"
	"github.com/aircomp/propostas-service/internal/service"
	"github.com/aircomp/propostas-service/internal/template"
)

const testSecret = "segredo-de-teste"

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		DB:      config.DBConfig{Path: filepath.Join(t.TempDir(), "crm.db")},
		DataDir: t.TempDir(),
		Auth:    config.AuthConfig{AccessSecret: testSecret},
	}
	database, err := db.New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("abrir banco: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})

	store := template.NewStore(database)
	if err := store.EnsureBuiltins(context.Background()); err != nil {
		t.Fatalf("EnsureBuiltins: %v", err)
	}

	proposals := service.NewProposalService(repository.NewDocumentRepository(database), store, cfg, zerolog.Nop())
	handler := NewHandler(proposals, store, repository.NewClientRepository(database), zerolog.Nop())
	return NewRouter(handler, middleware.Auth(auth.NewParser(testSecret)), "test")
}

func testToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  uuid.New().String(),
		"username": "vend1",
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("assinar token: %v", err)
	}
	return signed
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	router := testRouter(t)

	t.Run("sem token", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/templates", "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("token inválido", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/templates", "lixo", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("health é aberto", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/health", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestTemplateEndpoints(t *testing.T) {
	router := testRouter(t)
	token := testToken(t)

	t.Run("lista embutidos", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/templates", token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		var resp struct {
			Templates []string `json:"templates"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if len(resp.Templates) != 2 {
			t.Fatalf("templates = %v", resp.Templates)
		}
	})

	t.Run("carrega por nome", func(t *testing.T) {
		path := "/templates/" + url.PathEscape(template.DefaultPurchaseName)
		rec := doRequest(t, router, http.MethodGet, path, token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var payload templatePayload
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatal(err)
		}
		if len(payload.Pages) != 5 {
			t.Fatalf("pages = %d", len(payload.Pages))
		}
	})

	t.Run("desconhecido é 404", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/templates/fantasma", token, nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("salvar e listar", func(t *testing.T) {
		body, err := json.Marshal(templatePayload{
			Kind: "COTACAO",
			Pages: []pagePayload{
				{
					Number: 1,
					Elements: []elementPayload{
						{Kind: "text", X: 40, Y: 100, W: 400, H: 20, Content: "Olá"},
					},
				},
			},
		})
		if err != nil {
			t.Fatal(err)
		}
		rec := doRequest(t, router, http.MethodPut, "/templates/Minha%20Proposta", token, body)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}

		rec = doRequest(t, router, http.MethodGet, "/templates", token, nil)
		var resp struct {
			Templates []string `json:"templates"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if len(resp.Templates) != 3 {
			t.Fatalf("templates = %v", resp.Templates)
		}
	})

	t.Run("salvar inválido é 400", func(t *testing.T) {
		body, err := json.Marshal(templatePayload{
			Kind: "COTACAO",
			Pages: []pagePayload{
				{Number: 1, Editable: true},
			},
		})
		if err != nil {
			t.Fatal(err)
		}
		rec := doRequest(t, router, http.MethodPut, "/templates/Quebrado", token, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("apagar embutido é 403", func(t *testing.T) {
		path := "/templates/" + url.PathEscape(template.DefaultRentalName)
		rec := doRequest(t, router, http.MethodDelete, path, token, nil)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestDocumentEndpoints(t *testing.T) {
	router := testRouter(t)
	token := testToken(t)

	t.Run("render de documento inexistente é 404", func(t *testing.T) {
		path := "/documents/" + uuid.New().String() + "/pdf"
		rec := doRequest(t, router, http.MethodPost, path, token, nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("id malformado é 400", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/documents/abc/pdf", token, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("export sem corpo é 400", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/documents/export", token, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("export do período vazio devolve planilha", func(t *testing.T) {
		body := []byte(`{"period_start":"2024-03-01","period_end":"2024-04-01"}`)
		rec := doRequest(t, router, http.MethodPost, "/documents/export", token, body)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
			t.Fatal("resposta não parece xlsx")
		}
	})
}

func TestClientsEndpoint(t *testing.T) {
	router := testRouter(t)
	token := testToken(t)

	rec := doRequest(t, router, http.MethodGet, "/clients?search=nada", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Clients []json.RawMessage `json:"clients"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Clients) != 0 {
		t.Fatalf("clients = %v", resp.Clients)
	}
}
