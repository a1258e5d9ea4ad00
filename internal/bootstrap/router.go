package bootstrap

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/studiokit/projects-backend/config"
	"github.com/studiokit/projects-backend/internal/ai"
	"github.com/studiokit/projects-backend/internal/httpapi"
	"github.com/studiokit/projects-backend/internal/httpapi/middleware"
	"github.com/studiokit/projects-backend/internal/media"
	"github.com/studiokit/projects-backend/internal/projects"
	projecthttp "github.com/studiokit/projects-backend/internal/projects/http"
)

// Upstream proxy budget: steady 5 req/s with bursts of 10 per endpoint.
const (
	proxyRate  = rate.Limit(5)
	proxyBurst = 10
)

type RouterDeps struct {
	Cfg   *config.Config
	Store projects.Store
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}))

	matcher := middleware.NewOriginMatcher(dep.Cfg.Server.AllowedOrigins)
	r.Use(middleware.CORS(matcher))

	httpapi.NewHealthHandler().RegisterRoutes(r)

	projectHandler := projecthttp.New(dep.Store)
	projectHandler.Register(r.Group("/projects"))

	aiClient := ai.NewClient(dep.Cfg.AI.BaseURL, dep.Cfg.AI.APIKey)
	aiHandler := ai.NewHandler(aiClient, dep.Cfg.AI.Model, rate.NewLimiter(proxyRate, proxyBurst))
	aiHandler.Register(r)

	mediaClient := media.NewClient(dep.Cfg.Media.BaseURL, dep.Cfg.Media.APIKey)
	mediaHandler := media.NewHandler(mediaClient, rate.NewLimiter(proxyRate, proxyBurst))
	mediaHandler.Register(r)

	return r
}
