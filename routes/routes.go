package routes

import (
	"swiftcater/configs"
	"swiftcater/controllers"
	"swiftcater/middlewares"
	"swiftcater/repository"
	"swiftcater/services"
	"swiftcater/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	restRepo := repository.NewRestaurantRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	promoRepo := repository.NewPromotionRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	refundRepo := repository.NewRefundRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)
	sessionSvc := services.NewSessionService(db, sessionRepo, menuRepo)
	promoSvc := services.NewPromoService(db, promoRepo, sessionRepo)
	pricingSvc := services.NewPricingService(db, sessionRepo, restRepo, promoRepo)
	orderSvc := services.NewOrderService(db, orderRepo, sessionRepo, restRepo, pricingSvc)
	refundSvc := services.NewRefundService(db, refundRepo, orderRepo, restRepo)
	dashSvc := services.NewDashboardService(db, restRepo, refundRepo)
	promoAdminSvc := services.NewPromotionAdminService(promoRepo, restRepo)

	// Live status stream
	hub := ws.NewStatusHub(orderSvc)
	orderSvc.Notifier = hub
	go hub.Run()

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	restCtrl := controllers.NewRestaurantController(restRepo)
	sessionCtrl := controllers.NewSessionController(sessionSvc, restRepo, sessionRepo)
	promoCtrl := controllers.NewPromoController(promoSvc)
	pricingCtrl := controllers.NewPricingController(pricingSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	refundCtrl := controllers.NewRefundController(refundSvc)
	menuCtrl := controllers.NewMenuController(menuRepo, restRepo)
	dashCtrl := controllers.NewDashboardController(dashSvc, promoAdminSvc, orderSvc)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.POST("/refresh", authCtrl.Refresh)
	}

	// Auth (protected)
	aAuth := a.Group("", middlewares.AuthMiddleware(cfg))
	{
		aAuth.GET("/me", authCtrl.Me)
	}

	// Public browsing + tracking
	r.GET("/restaurants", restCtrl.List)
	r.GET("/restaurants/:id", restCtrl.Detail)
	r.GET("/track/:token", orderCtrl.Track)
	r.GET("/ws/orders/:token", hub.HandleWebSocket)

	// Ordering flow (customer)
	u := r.Group("/", middlewares.AuthMiddleware(cfg))
	{
		u.POST("/sessions", sessionCtrl.Create)
		u.GET("/sessions", sessionCtrl.List)
		u.GET("/sessions/:id", sessionCtrl.Detail)
		u.PATCH("/sessions/:id", sessionCtrl.Update)
		u.POST("/sessions/:id/items", sessionCtrl.AddItem)
		u.PATCH("/sessions/:id/items/:itemId", sessionCtrl.UpdateQty)
		u.DELETE("/sessions/:id/items/:itemId", sessionCtrl.RemoveItem)
		u.DELETE("/sessions/:id/items", sessionCtrl.Clear)

		u.POST("/sessions/:id/promos", promoCtrl.Apply)
		u.DELETE("/sessions/:id/promos/:code", promoCtrl.Remove)

		u.GET("/sessions/:id/quote", pricingCtrl.Quote)
		u.POST("/sessions/:id/checkout", orderCtrl.Checkout)

		u.GET("/orders", orderCtrl.ListForMe)
		u.GET("/orders/:id", orderCtrl.Detail)
		u.POST("/orders/:id/refunds", refundCtrl.Create)
		u.GET("/orders/:id/refunds", refundCtrl.ListByOrder)
	}

	// Partner Restaurant (owner/admin)
	partnerRest := r.Group("/partner/restaurant", middlewares.AuthMiddleware(cfg, "owner", "admin"))
	{
		partnerRest.GET("/dashboard", dashCtrl.Overview)
		partnerRest.GET("/orders", dashCtrl.RestaurantOrders)
		partnerRest.PATCH("/orders/:id/accept", dashCtrl.Accept)
		partnerRest.PATCH("/orders/:id/handoff", dashCtrl.Handoff)
		partnerRest.PATCH("/orders/:id/complete", dashCtrl.Complete)
		partnerRest.PATCH("/orders/:id/cancel", dashCtrl.Cancel)

		partnerRest.GET("/menu", menuCtrl.List)
		partnerRest.POST("/menu", menuCtrl.Create)
		partnerRest.PATCH("/menu/:id", menuCtrl.Update)

		partnerRest.GET("/promotions", dashCtrl.Promotions)
		partnerRest.POST("/promotions", dashCtrl.CreatePromotion)
		partnerRest.PATCH("/promotions/:id", dashCtrl.UpdatePromotion)
		partnerRest.DELETE("/promotions/:id", dashCtrl.DeletePromotion)

		partnerRest.GET("/refunds", refundCtrl.ListByRestaurant)
		partnerRest.PATCH("/refunds/:id/process", refundCtrl.Process)
	}
}
