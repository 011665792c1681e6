package bot

import (
	"testing"
	"time"

	coreconfig "github.com/malhaydar/noorbot/core/config"
	"github.com/malhaydar/noorbot/internal/catalog"
	"github.com/malhaydar/noorbot/internal/scrape"
)

func testApp(t *testing.T) *App {
	t.Helper()
	cfg := &coreconfig.Config{}
	cfg.Telegram.Token = "test-token"
	cfg.Content.PathPrefix = "/content/"

	cat, err := catalog.Default(cfg.Content.PathPrefix)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	fetcher, err := scrape.NewClient("https://hmomen.com", 5*time.Second)
	if err != nil {
		t.Fatalf("fetcher: %v", err)
	}
	app, err := New(cfg, cat, fetcher)
	if err != nil {
		t.Fatalf("app: %v", err)
	}
	return app
}

func TestNewRegistersCommands(t *testing.T) {
	app := testApp(t)

	start, ok := app.Registry().LookupCommand("/start")
	if !ok || start.Handler == nil {
		t.Error("/start not registered")
	}
	stats, ok := app.Registry().LookupCommand("/stats")
	if !ok || !stats.AdminOnly || !stats.Hidden {
		t.Errorf("/stats = %+v, want hidden admin-only", stats)
	}

	// Only /start belongs in the public command menu.
	visible := app.Registry().ListCommands(true)
	if len(visible) != 1 || visible[0].Text != "/start" {
		t.Errorf("visible commands = %+v", visible)
	}
}

func TestNewRegistersNavigationCallbacks(t *testing.T) {
	app := testApp(t)
	for _, key := range []string{
		catalog.KeyBack,
		catalog.KeyCategory,
		catalog.KeySubcategory,
		catalog.KeyItem,
	} {
		if _, ok := app.Registry().GetCallback(key); !ok {
			t.Errorf("callback %q not registered", key)
		}
	}
	if app.Registry().TextFallback() == nil {
		t.Error("text fallback not set; free text should open the menu")
	}
}

func TestRunOptionsCarryRoutes(t *testing.T) {
	app := testApp(t)
	opts := app.RunOptions()
	if opts.Registry != app.Registry() {
		t.Error("registry not threaded into run options")
	}
	// callback route + text route + two command routes
	if len(opts.Routes) != 4 {
		t.Errorf("routes = %d, want 4", len(opts.Routes))
	}
	if len(opts.Middlewares) == 0 {
		t.Error("no middlewares assembled")
	}
}
