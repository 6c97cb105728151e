package routes

import (
	"github.com/mfranzen/GigSphere/controllers"
	"github.com/mfranzen/GigSphere/middleware"

	"github.com/gin-gonic/gin"
)

// initAuthRoutes wires registration, login and the profile endpoints
func initAuthRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register/", controllers.RegisterUser)
		auth.POST("/login/", controllers.LoginUser)
	}

	profile := router.Group("/profile")
	profile.Use(middleware.AuthMiddleware())
	{
		profile.GET("/", controllers.GetProfile)
		profile.PATCH("/", controllers.UpdateProfile)
	}
}

// initMarketplaceRoutes wires offers, offer details, orders and reviews
func initMarketplaceRoutes(router *gin.RouterGroup) {
	// Public read-only surface
	router.GET("/offers/", controllers.GetOffers)
	router.GET("/offers/:id/", controllers.GetOffer)
	router.GET("/offerdetails/", controllers.ListOfferDetails)
	router.GET("/offerdetails/:id/", controllers.GetOfferDetail)
	router.GET("/reviews/", controllers.GetReviews)
	router.GET("/order-count/:business_user_id/", controllers.GetOrderCount)
	router.GET("/completed-order-count/:business_user_id/", controllers.GetCompletedOrderCount)

	// Offer mutation: business role to create, owner checks inside handlers
	offers := router.Group("/offers")
	offers.Use(middleware.AuthMiddleware())
	{
		offers.POST("/", middleware.BusinessMiddleware(), controllers.CreateOffer)
		offers.PUT("/:id/", controllers.UpdateOffer)
		offers.PATCH("/:id/", controllers.UpdateOffer)
		offers.DELETE("/:id/", controllers.DeleteOffer)
	}

	// Orders: creation is customer-only, the rest is party-scoped
	orders := router.Group("/orders")
	orders.Use(middleware.AuthMiddleware())
	{
		orders.POST("/", middleware.CustomerMiddleware(), controllers.CreateOrder)
		orders.GET("/", controllers.ListOrders)
		orders.GET("/export/", middleware.BusinessMiddleware(), controllers.ExportOrders)
		orders.GET("/:id/", controllers.GetOrder)
		orders.PUT("/:id/", controllers.UpdateOrderStatus)
		orders.PATCH("/:id/", controllers.UpdateOrderStatus)
		orders.DELETE("/:id/", controllers.DeleteOrder)
		orders.GET("/:id/invoice/", controllers.DownloadInvoice)
	}

	// Reviews: creation customer-only, edits author-scoped
	reviews := router.Group("/reviews")
	reviews.Use(middleware.AuthMiddleware())
	{
		reviews.POST("/", middleware.CustomerMiddleware(), controllers.CreateReview)
		reviews.PATCH("/:id/", controllers.UpdateReview)
		reviews.DELETE("/:id/", controllers.DeleteReview)
	}
}
