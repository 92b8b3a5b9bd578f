package router

import (
	"github.com/oksasatya/multitenant-notes/internal/application"
	"github.com/oksasatya/multitenant-notes/internal/container"
	"github.com/oksasatya/multitenant-notes/internal/infrastructure/memory"
	handlers "github.com/oksasatya/multitenant-notes/internal/interface/http"
	"github.com/oksasatya/multitenant-notes/internal/router/modules"
)

type AppDeps struct {
	Auth        *application.AuthService
	Notes       *application.NoteService
	Entitlement *application.EntitlementService
}

func buildDeps() AppDeps {
	store := container.GetStore()
	if store == nil {
		store = memory.NewStore()
		container.SetStore(store)
	}
	users := memory.NewUserRepository(store)
	tenants := memory.NewTenantRepository(store)
	notes := memory.NewNoteRepository(store)

	// a nil *RabbitPublisher must not become a non-nil interface
	var pub application.EventPublisher
	if rp := container.GetRabbitPub(); rp != nil {
		pub = rp
	}

	logger := container.GetLogger()
	m := container.GetMetrics()

	return AppDeps{
		Auth:        application.NewAuthService(users, tenants, container.GetJWT(), logger, m),
		Notes:       application.NewNoteService(notes, tenants, store, pub, logger, m),
		Entitlement: application.NewEntitlementService(tenants, store, pub, logger, m),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	deps := buildDeps()

	r.Add(modules.NewHealthModule(cfg.AppName))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(deps.Auth, logger)))
	r.Add(modules.NewNoteModule(handlers.NewNoteHandler(deps.Notes, logger), deps.Auth))
	r.Add(modules.NewTenantModule(handlers.NewTenantHandler(deps.Entitlement, logger), deps.Auth))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(container.GetMetrics()))
	}
}
