package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"grocery-api/internal/domain/user"
	"grocery-api/internal/handler/api"
	"grocery-api/internal/handler/middleware"
	"grocery-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	cartHandler *api.CartHandler,
	orderHandler *api.OrderHandler,
	catalogHandler *api.CatalogHandler,
	adminHandler *api.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, cartHandler, orderHandler, catalogHandler, adminHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	cartHandler *api.CartHandler,
	orderHandler *api.OrderHandler,
	catalogHandler *api.CatalogHandler,
	adminHandler *api.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodPost, Path: "/verification-codes", Handler: authHandler.SendVerificationCode},
				{Method: http.MethodPost, Path: "/verification-codes/verify", Handler: authHandler.VerifyCode},
				{Method: http.MethodPost, Path: "/password-reset", Handler: authHandler.ResetPassword},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
				{Method: http.MethodPost, Path: "/device-tokens", Handler: authHandler.RegisterDeviceToken},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/offers", Handler: catalogHandler.ListOffers},
			{Method: http.MethodGet, Path: "/offers/:id", Handler: catalogHandler.GetOffer},
			{Method: http.MethodGet, Path: "/products", Handler: catalogHandler.ListProducts},
			{Method: http.MethodGet, Path: "/products/:id", Handler: catalogHandler.GetProduct},
		})

		cart := apiGroup.Group("/cart")
		cart.Use(authMiddleware.RequireAuth())
		{
			addRoutes(cart, []route{
				{Method: http.MethodGet, Path: "", Handler: cartHandler.Get},
				{Method: http.MethodDelete, Path: "", Handler: cartHandler.Clear},
				{Method: http.MethodPost, Path: "/validate", Handler: cartHandler.Validate},
				{Method: http.MethodPut, Path: "/offers", Handler: cartHandler.PutOffer},
				{Method: http.MethodDelete, Path: "/offers/:id", Handler: cartHandler.RemoveOffer},
				{Method: http.MethodPut, Path: "/products", Handler: cartHandler.PutProduct},
				{Method: http.MethodDelete, Path: "/products/:id", Handler: cartHandler.RemoveProduct},
			})
		}

		orders := apiGroup.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			addRoutes(orders, []route{
				{Method: http.MethodPost, Path: "", Handler: orderHandler.Create},
				{Method: http.MethodGet, Path: "", Handler: orderHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: orderHandler.Get},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleAdmin))
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/products", Handler: catalogHandler.CreateProduct},
				{Method: http.MethodPut, Path: "/products/:id", Handler: catalogHandler.UpdateProduct},
				{Method: http.MethodPost, Path: "/offers", Handler: catalogHandler.CreateOffer},
				{Method: http.MethodPut, Path: "/offers/:id", Handler: catalogHandler.UpdateOffer},
				{Method: http.MethodDelete, Path: "/offers/:id", Handler: catalogHandler.DeleteOffer},
				{Method: http.MethodPatch, Path: "/orders/:id/status", Handler: orderHandler.UpdateStatus},
				{Method: http.MethodPost, Path: "/users", Handler: adminHandler.CreateAdminUser},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
