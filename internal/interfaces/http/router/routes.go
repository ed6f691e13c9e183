package router

import (
	"time"

	"github.com/clientregistry/backend/internal/domain/shared"
	"github.com/clientregistry/backend/internal/interfaces/http/handler"
	"github.com/clientregistry/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers groups the API handlers
type Handlers struct {
	Clients *handler.ClientHandler
	Lookups *handler.LookupHandler
	Drafts  *handler.DraftHandler
	System  *handler.SystemHandler
}

// Guards are the per-route protections. A nil limiter or store disables
// the corresponding check.
type Guards struct {
	Limiter        *middleware.RateLimiter
	Idempotency    shared.IdempotencyStore
	IdempotencyTTL time.Duration
}

// APIGroups builds the route groups of the client registry API
func APIGroups(h Handlers, g Guards) []RouteRegistrar {
	var limited []gin.HandlerFunc
	if g.Limiter != nil {
		limited = append(limited, middleware.RateLimit(g.Limiter))
	}
	idempotent := func(next gin.HandlerFunc) []gin.HandlerFunc {
		if g.Idempotency == nil {
			return []gin.HandlerFunc{next}
		}
		return []gin.HandlerFunc{middleware.Idempotency(g.Idempotency, g.IdempotencyTTL), next}
	}

	clients := NewDomainGroup("clients", "/clients").
		GET("", h.Clients.List).
		POST("", idempotent(h.Clients.Create)...).
		GET("/:id", h.Clients.Get).
		PUT("/:id", h.Clients.Update).
		DELETE("/:id", h.Clients.Delete)

	lookups := NewDomainGroup("lookups", "/lookups").
		Use(limited...).
		GET("/cnpj/:cnpj", h.Lookups.TaxID).
		GET("/cep/:cep", h.Lookups.PostalCode)

	drafts := NewDomainGroup("drafts", "/drafts").
		Use(limited...).
		POST("", h.Drafts.Open).
		GET("/:id", h.Drafts.Get).
		PATCH("/:id", h.Drafts.Edit).
		POST("/:id/submit", idempotent(h.Drafts.Submit)...).
		DELETE("/:id", h.Drafts.Discard)

	system := NewDomainGroup("system", "").
		GET("/health", h.System.Health).
		GET("/system/info", h.System.GetSystemInfo)

	return []RouteRegistrar{clients, lookups, drafts, system}
}
