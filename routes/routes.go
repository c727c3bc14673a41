package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sufal54/bolpurmart-admin-sub000/controllers"
	"github.com/sufal54/bolpurmart-admin-sub000/middleware"
	"github.com/sufal54/bolpurmart-admin-sub000/realtime"
)

// Controllers bundles every handler the router mounts.
type Controllers struct {
	Auth          *controllers.AuthController
	Products      *controllers.ProductController
	Categories    *controllers.CategoryController
	Vendors       *controllers.VendorController
	Orders        *controllers.OrderController
	TimeSlots     *controllers.TimeSlotController
	Users         *controllers.UserController
	Partners      *controllers.DeliveryPartnerController
	UPIMethods    *controllers.UPIMethodController
	Uploads       *controllers.UploadController
	Notifications *controllers.NotificationController
}

// RegisterRoutes mounts the public endpoints (health, login, websocket)
// and the admin API behind JWT auth.
func RegisterRoutes(r *gin.Engine, ctrls Controllers, hub *realtime.Hub, jwtSecret string) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/auth/login", ctrls.Auth.Login)
	r.GET("/ws", hub.HandleWebSocket)

	admin := r.Group("/admin", middleware.AdminAuth(jwtSecret))

	productRoutes := admin.Group("/products")
	{
		productRoutes.GET("/", ctrls.Products.GetProducts)
		productRoutes.GET("/:id", ctrls.Products.GetProductByID)
		productRoutes.POST("/", ctrls.Products.CreateProduct)
		productRoutes.PUT("/:id", ctrls.Products.UpdateProduct)
		productRoutes.DELETE("/:id", ctrls.Products.DeleteProduct)
	}

	categoryRoutes := admin.Group("/categories")
	{
		categoryRoutes.GET("/", ctrls.Categories.GetCategories)
		categoryRoutes.POST("/", ctrls.Categories.CreateCategory)
		categoryRoutes.PUT("/:id", ctrls.Categories.UpdateCategory)
		categoryRoutes.DELETE("/:id", ctrls.Categories.DeleteCategory)
	}

	vendorRoutes := admin.Group("/vendors")
	{
		vendorRoutes.GET("/", ctrls.Vendors.GetVendors)
		vendorRoutes.POST("/", ctrls.Vendors.CreateVendor)
		vendorRoutes.PUT("/:id", ctrls.Vendors.UpdateVendor)
		vendorRoutes.DELETE("/:id", ctrls.Vendors.DeleteVendor)
	}

	orderRoutes := admin.Group("/orders")
	{
		orderRoutes.GET("/", ctrls.Orders.GetOrders)
		orderRoutes.GET("/:id", ctrls.Orders.GetOrderByID)
		orderRoutes.PATCH("/:id/status", ctrls.Orders.UpdateOrderStatus)
		orderRoutes.PATCH("/:id/payment", ctrls.Orders.VerifyPayment)
		orderRoutes.PATCH("/:id/partner", ctrls.Orders.AssignDeliveryPartner)
	}

	slotRoutes := admin.Group("/time-slots")
	{
		slotRoutes.GET("/", ctrls.TimeSlots.GetTimeSlots)
		slotRoutes.POST("/", ctrls.TimeSlots.CreateTimeSlot)
		slotRoutes.PUT("/:id", ctrls.TimeSlots.UpdateTimeSlot)
		slotRoutes.DELETE("/:id", ctrls.TimeSlots.DeleteTimeSlot)
	}

	ruleRoutes := admin.Group("/time-rules")
	{
		ruleRoutes.GET("/", ctrls.TimeSlots.GetTimeRules)
		ruleRoutes.PUT("/", ctrls.TimeSlots.SaveTimeRules)
		ruleRoutes.POST("/:id/toggle", ctrls.TimeSlots.ToggleCategory)
		ruleRoutes.GET("/availability", ctrls.TimeSlots.GetAvailability)
	}

	userRoutes := admin.Group("/users")
	{
		userRoutes.GET("/", ctrls.Users.GetUsers)
		userRoutes.GET("/:id", ctrls.Users.GetUserByID)
		userRoutes.GET("/:id/notifications", ctrls.Notifications.GetUserNotifications)
		userRoutes.PATCH("/:id/block", ctrls.Users.SetBlocked)
		userRoutes.DELETE("/:id", ctrls.Users.DeleteUser)
	}

	partnerRoutes := admin.Group("/delivery-partners")
	{
		partnerRoutes.GET("/", ctrls.Partners.GetPartners)
		partnerRoutes.POST("/", ctrls.Partners.CreatePartner)
		partnerRoutes.PUT("/:id", ctrls.Partners.UpdatePartner)
		partnerRoutes.DELETE("/:id", ctrls.Partners.DeletePartner)
	}

	upiRoutes := admin.Group("/upi-methods")
	{
		upiRoutes.GET("/", ctrls.UPIMethods.GetUPIMethods)
		upiRoutes.POST("/", ctrls.UPIMethods.CreateUPIMethod)
		upiRoutes.PUT("/:id", ctrls.UPIMethods.UpdateUPIMethod)
		upiRoutes.DELETE("/:id", ctrls.UPIMethods.DeleteUPIMethod)
	}

	admin.POST("/uploads", ctrls.Uploads.UploadImage)
	admin.GET("/notifications/log", ctrls.Notifications.GetDeliveryLog)
}
