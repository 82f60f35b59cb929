package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	controller "github.com/m-mizutani/texpack/pkg/controller/http"
	"github.com/m-mizutani/texpack/pkg/domain/model"
	"github.com/m-mizutani/texpack/pkg/infra/fetcher"
	"github.com/m-mizutani/texpack/pkg/usecase"
)

func TestHealthEndpoint(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewBundle(fetcher.NewClient())

	server, err := controller.NewServer(
		ctx,
		uc,
		controller.WithAddr("localhost:0"),
		controller.WithTexturesMap(model.TexturesMap{
			"wall01.dds":  "https://repoA.example.com/textures",
			"floor02.dds": "https://repoA.example.com/textures",
			"roof.dds":    "https://repoB.example.com",
		}),
	)
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	server.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Status code = %v, want %v", w.Code, http.StatusOK)
	}

	var status model.HealthStatus
	if err := json.NewDecoder(w.Body).Decode(&status); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if status.Status != "healthy" {
		t.Errorf("Status = %v, want healthy", status.Status)
	}

	if status.Service != "texpack" {
		t.Errorf("Service = %v, want texpack", status.Service)
	}

	if status.Version == "" {
		t.Error("Version should not be empty")
	}

	if status.Catalog.Textures != 3 {
		t.Errorf("Catalog.Textures = %v, want 3", status.Catalog.Textures)
	}

	if status.Catalog.Repositories != 2 {
		t.Errorf("Catalog.Repositories = %v, want 2", status.Catalog.Repositories)
	}
}
