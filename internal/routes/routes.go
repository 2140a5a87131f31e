package routes

import (
	"os"

	"jungleetoys_back_end/internal/handlers/admin"
	"jungleetoys_back_end/internal/handlers/checkout"
	"jungleetoys_back_end/internal/handlers/offer"
	"jungleetoys_back_end/internal/handlers/product"
	shippinghandlers "jungleetoys_back_end/internal/handlers/shipping"
	"jungleetoys_back_end/internal/handlers/user"
	"jungleetoys_back_end/internal/middleware"
	"jungleetoys_back_end/internal/shipping"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// Auth
	api.POST("/auth/register", user.Register)
	api.POST("/auth/login", middleware.LoginRateLimit(), user.Login)
	api.POST("/auth/logout", user.Logout)
	api.GET("/auth/me", middleware.AuthRequired(), user.Me)
	api.GET("/auth/:provider", user.OAuthBegin)
	api.GET("/auth/:provider/callback", user.OAuthCallback)

	// Addresses
	addresses := api.Group("/addresses", middleware.AuthRequired())
	addresses.POST("", user.CreateAddress)
	addresses.GET("", user.GetAddresses)
	addresses.DELETE("/:id", user.DeleteAddress)

	// Catalog
	api.GET("/products", product.ListProducts)
	api.GET("/products/search", product.SearchProducts)
	api.GET("/products/:id", product.GetProduct)
	api.GET("/products/:id/reviews", product.GetProductReviews)
	api.GET("/products/:id/images", product.GetImageURLs)

	// Cart
	cart := api.Group("/cart", middleware.AuthRequired())
	cart.GET("", user.GetCart)
	cart.POST("/items", user.AddToCart)
	cart.PUT("/items", user.UpdateCartItem)
	cart.DELETE("/items/:productId", user.RemoveFromCart)
	cart.DELETE("", user.ClearCart)
	api.GET("/cart/ws", middleware.AuthRequired(), user.CartWebSocket)

	// Shipping rates, one route per upstream provider.
	carriers := shipping.DefaultCarriers()
	rates := api.Group("/shipping/rates")
	rates.POST("/shippo", shippinghandlers.GetRates(
		shipping.NewShippoFetcher(os.Getenv("SHIPPO_API_KEY")), carriers))
	rates.POST("/easypost", shippinghandlers.GetRates(
		shipping.NewEasyPostFetcher(os.Getenv("EASYPOST_API_KEY")), carriers))
	rates.POST("/shipengine", shippinghandlers.GetRates(
		shipping.NewShipEngineFetcher(os.Getenv("SHIPENGINE_API_KEY")), carriers))

	// Checkout and orders
	api.POST("/checkout", middleware.AuthRequired(), checkout.CreatePaymentIntent)
	api.POST("/webhook/stripe", checkout.StripeWebhook)
	orders := api.Group("/orders", middleware.AuthRequired())
	orders.GET("", checkout.GetMyOrders)
	orders.GET("/:id", checkout.GetOrderByID)
	orders.GET("/:id/invoice", checkout.DownloadInvoice)

	// Reviews
	api.POST("/products/:id/reviews", middleware.AuthRequired(), product.CreateReview)

	// Offers
	api.POST("/products/:id/offers", middleware.AuthRequired(), offer.CreateOffer)
	offers := api.Group("/offers", middleware.AuthRequired())
	offers.GET("", offer.GetMyOffers)
	offers.POST("/:offerId/respond", offer.RespondToCounter)

	// Back office
	adminGroup := api.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin)
	adminGroup.POST("/products", product.CreateProduct)
	adminGroup.PUT("/products/:id", product.UpdateProduct)
	adminGroup.DELETE("/products/:id", product.DeleteProduct)
	adminGroup.POST("/products/:id/images", product.RequestImageUpload)
	adminGroup.DELETE("/products/:id/reviews/:reviewId", product.DeleteReview)
	adminGroup.GET("/orders", admin.ListOrders)
	adminGroup.PUT("/orders/:id/status", admin.UpdateOrderStatus)
	adminGroup.GET("/offers", offer.ListPendingOffers)
	adminGroup.POST("/offers/:offerId/decision", offer.DecideOffer)
	adminGroup.GET("/settings", admin.GetSettings)
	adminGroup.PUT("/settings", admin.UpdateSettings)
	adminGroup.GET("/shipping/carriers", admin.GetCarriers)
	adminGroup.POST("/shipping/carriers", admin.UpdateCarriers)
}
