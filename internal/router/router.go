package router

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"
)

type Handler interface {
	Login(c *ginext.Context)
	Me(c *ginext.Context)
	CreateDoctor(c *ginext.Context)
	GetDoctor(c *ginext.Context)
	ListDoctors(c *ginext.Context)
	CreateSlot(c *ginext.Context)
	GetSlot(c *ginext.Context)
	ListSlots(c *ginext.Context)
	CreateBooking(c *ginext.Context)
	ConfirmBooking(c *ginext.Context)
	CancelBooking(c *ginext.Context)
	GetBooking(c *ginext.Context)
	ListMyBookings(c *ginext.Context)
	ListBookings(c *ginext.Context)
	ListSlotBookings(c *ginext.Context)
	SweepExpired(c *ginext.Context)
}

func InitRouter(mode string, h Handler, authMW, adminMW ginext.HandlerFunc, mw ...ginext.HandlerFunc) *ginext.Engine {
	router := ginext.New(mode)
	router.Use(mw...)

	api := router.Group("/api")
	{
		// Auth
		api.POST("/auth/login", h.Login)
		api.GET("/auth/me", authMW, h.Me)

		// Doctors
		api.GET("/doctors", h.ListDoctors)
		api.GET("/doctors/:id", h.GetDoctor)
		api.POST("/doctors", authMW, adminMW, h.CreateDoctor)

		// Slots
		api.GET("/slots", h.ListSlots)
		api.GET("/slots/:id", h.GetSlot)
		api.POST("/slots", authMW, adminMW, h.CreateSlot)
		api.GET("/slots/:id/bookings", authMW, adminMW, h.ListSlotBookings)

		// Bookings
		bookings := api.Group("/bookings", authMW)
		{
			bookings.POST("", h.CreateBooking)
			bookings.GET("/my", h.ListMyBookings)
			bookings.GET("", adminMW, h.ListBookings)
			bookings.POST("/sweep", adminMW, h.SweepExpired)
			bookings.GET("/:id", h.GetBooking)
			bookings.POST("/:id/confirm", h.ConfirmBooking)
			bookings.DELETE("/:id", h.CancelBooking)
		}
	}

	router.GET("/health", func(c *ginext.Context) {
		c.JSON(http.StatusOK, ginext.H{"status": "ok"})
	})

	return router
}
