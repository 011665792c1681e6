package bot

import (
	"fmt"

	coreconfig "github.com/malhaydar/noorbot/core/config"
	tg "github.com/malhaydar/noorbot/core/telegram"
	"github.com/malhaydar/noorbot/core/telegram/commands"
	"github.com/malhaydar/noorbot/core/telegram/middleware"
	"github.com/malhaydar/noorbot/core/telegram/router"
	"github.com/malhaydar/noorbot/internal/catalog"
	"github.com/malhaydar/noorbot/internal/metrics"
	"github.com/malhaydar/noorbot/internal/scrape"

	tele "gopkg.in/telebot.v4"
)

// App owns the assembled registry and views for one bot process.
type App struct {
	cfg   *coreconfig.Config
	reg   *tg.Registry
	views *Views
}

// New builds the application: views, command registry, and callback routes.
func New(cfg *coreconfig.Config, cat *catalog.Catalog, fetcher *scrape.Client) (*App, error) {
	views := &Views{
		Catalog: cat,
		Fetcher: fetcher,
		Prefix:  cfg.Content.PathPrefix,
	}

	reg := tg.NewRegistry()
	reg.RegisterCommand("/start", commands.Command{
		Handler:     views.Start,
		Description: descStart,
	})
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     statsHandler,
		Description: descStats,
		AdminOnly:   true,
		Hidden:      true,
	})

	callbacks := []struct {
		key     string
		handler tele.HandlerFunc
	}{
		{catalog.KeyBack, views.Root},
		{catalog.KeyCategory, views.Category},
		{catalog.KeySubcategory, views.Subcategory},
		{catalog.KeyItem, views.Item},
	}
	for _, cb := range callbacks {
		if err := reg.RegisterCallback(cb.key, cb.handler); err != nil {
			return nil, fmt.Errorf("bot: %w", err)
		}
	}

	// Any text, not just /start, opens the menu.
	reg.SetTextFallback(views.Start)

	return &App{cfg: cfg, reg: reg, views: views}, nil
}

// Registry exposes the assembled registry, mainly for tests.
func (a *App) Registry() *tg.Registry {
	return a.reg
}

// RunOptions assembles everything RunTelegram needs.
func (a *App) RunOptions() tg.RunOptions {
	routes := []tg.Route{
		router.CallbackRoute(a.reg, router.CallbackOptions{}),
		router.TextRoute(a.reg, router.TextOptions{}),
	}
	routes = append(routes, router.CommandRoutes(a.reg, middleware.AdminOptions{
		AdminID: a.cfg.Telegram.AdminID,
	})...)

	middlewares := tg.DefaultMiddlewares(a.cfg, rateLimited)
	middlewares = append(middlewares, tg.Middleware{
		Name: "update_counter",
		Use:  countUpdates,
	})

	return tg.RunOptions{
		Config:      a.cfg,
		Registry:    a.reg,
		Middlewares: middlewares,
		Routes:      routes,
	}
}

func countUpdates(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		metrics.UpdatesHandled.Inc()
		return next(c)
	}
}

// rateLimited acknowledges a throttled update without processing it.
func rateLimited(c tele.Context) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: textRateLimited})
	}
	return c.Send(textRateLimited)
}

// statsHandler reports process counters to the owner.
func statsHandler(c tele.Context) error {
	return c.Send(fmt.Sprintf(
		"updates handled: %.0f\npages fetched: %.0f\nfetch errors: %.0f\nfragments delivered: %.0f",
		metrics.CounterValue(metrics.UpdatesHandled),
		metrics.CounterValue(metrics.PagesFetched),
		metrics.CounterValue(metrics.FetchErrors),
		metrics.CounterValue(metrics.FragmentsDelivered),
	))
}
