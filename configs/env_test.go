package configs

import (
	"os"
	"testing"

	"todo-api/pkg/msg"
	"todo-api/pkg/resource"
)

func TestInit_LoadsEmbeddedCatalogues(t *testing.T) {
	if Env == nil {
		t.Fatal("expected Env to be initialized")
	}
	if Env.ApplicationName == "" {
		t.Error("expected a default application name")
	}

	if got := msg.GetMessage("todo.error.content-type"); got != "Content-Type must be application/json" {
		t.Errorf("unexpected content-type message %q", got)
	}
	if got := msg.GetMessage("app.error.internal"); got != "Internal Server Error" {
		t.Errorf("unexpected internal error message %q", got)
	}

	if _, ok := os.LookupEnv("PORT"); !ok {
		if got := resource.GetInt("app.server.port"); got != 3000 {
			t.Errorf("expected default port 3000, got %d", got)
		}
	}
	if got := resource.GetString("app.todo.stats.cron"); got == "" {
		t.Error("expected a stats cron expression")
	}
}

func TestGetStringOrDefault(t *testing.T) {
	t.Setenv("TODO_API_TEST_VALUE", "configured")

	if got := getStringOrDefault("TODO_API_TEST_VALUE", "fallback"); got != "configured" {
		t.Errorf("expected configured, got %q", got)
	}
	if got := getStringOrDefault("TODO_API_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}
}
