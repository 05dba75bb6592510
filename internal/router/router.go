// Package router registers the HTTP routes and their middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/Masozee/ladapala-sub001/internal/config"
	"github.com/Masozee/ladapala-sub001/internal/handler"
	"github.com/Masozee/ladapala-sub001/internal/middleware"
	"github.com/Masozee/ladapala-sub001/internal/model"
)

// RegisterRoutes registers routes that need no authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the staff auth routes.  Register, login and
// refresh sit behind the rate limiter; /v1/me requires a valid token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, rdb *redis.Client) {
	rl := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	g := e.Group("/v1/auth", rl)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.POST("/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated browse endpoints.  Room
// and room-type listings are reference data and go through the Redis
// response cache.
func RegisterPublic(e *echo.Echo, r *handler.RoomHandler, rdb *redis.Client) {
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	e.GET("/v1/rooms", r.ListRooms, cache)
	e.GET("/v1/rooms/:id", r.GetRoom, cache)
	e.GET("/v1/room-types", r.ListRoomTypes, cache)
}

// BackOffice bundles the handlers mounted on the protected groups.
type BackOffice struct {
	Rooms        *handler.RoomHandler
	Guests       *handler.GuestHandler
	FrontDesk    *handler.FrontDeskHandler
	Payments     *handler.PaymentHandler
	Cashier      *handler.CashierHandler
	Housekeeping *handler.HousekeepingHandler
}

// RegisterBackOffice registers the staff-facing endpoints under /v1,
// each group gated on the roles that own the workflow.  ADMIN can do
// everything.
func RegisterBackOffice(e *echo.Echo, b BackOffice, jwtSecret string) {
	auth := middleware.JWTAuth(jwtSecret)

	admin := e.Group("/v1", auth, middleware.RequireRole(model.RoleAdmin))
	admin.POST("/rooms", b.Rooms.CreateRoom)
	admin.POST("/room-types", b.Rooms.CreateRoomType)

	frontDesk := e.Group("/v1", auth,
		middleware.RequireRole(model.RoleAdmin, model.RoleReceptionist))
	frontDesk.POST("/guests", b.Guests.CreateGuest)
	frontDesk.GET("/guests", b.Guests.SearchGuests)
	frontDesk.GET("/guests/:id", b.Guests.GetGuest)
	frontDesk.PATCH("/guests/:id/vip", b.Guests.SetVIP)
	frontDesk.GET("/guests/:id/reservations", b.Guests.ListGuestReservations)

	frontDesk.POST("/reservations", b.FrontDesk.CreateReservation)
	frontDesk.GET("/reservations", b.FrontDesk.ListReservations)
	frontDesk.GET("/reservations/:id", b.FrontDesk.GetReservation)
	frontDesk.POST("/reservations/:id/assign-room", b.FrontDesk.AssignRoom)
	frontDesk.POST("/reservations/:id/confirm", b.FrontDesk.ConfirmReservation)
	frontDesk.POST("/reservations/:id/check-in", b.FrontDesk.CheckInReservation)
	frontDesk.POST("/reservations/:id/check-out", b.FrontDesk.CheckOutReservation)
	frontDesk.POST("/reservations/:id/cancel", b.FrontDesk.CancelReservation)
	frontDesk.POST("/reservations/:id/no-show", b.FrontDesk.NoShowReservation)
	frontDesk.POST("/reservations/:id/charges", b.FrontDesk.AddCharge)

	cashier := e.Group("/v1", auth,
		middleware.RequireRole(model.RoleAdmin, model.RoleReceptionist, model.RoleCashier))
	cashier.POST("/payments", b.Payments.CreatePayment)
	cashier.POST("/payments/:id/complete", b.Payments.CompletePayment)
	cashier.POST("/payments/:id/refund", b.Payments.RefundPayment)

	sessions := e.Group("/v1", auth,
		middleware.RequireRole(model.RoleAdmin, model.RoleCashier))
	sessions.POST("/cashier-sessions", b.Cashier.OpenSession)
	sessions.GET("/cashier-sessions/:id", b.Cashier.GetSession)
	sessions.POST("/cashier-sessions/:id/close", b.Cashier.CloseSession)

	hk := e.Group("/v1", auth,
		middleware.RequireRole(model.RoleAdmin, model.RoleReceptionist, model.RoleHousekeeping))
	hk.GET("/housekeeping/tasks", b.Housekeeping.ListOpenTasks)
	hk.POST("/housekeeping/tasks", b.Housekeeping.CreateComplaintTask)
	hk.POST("/housekeeping/tasks/:id/complete", b.Housekeeping.CompleteTask)

	maint := e.Group("/v1", auth,
		middleware.RequireRole(model.RoleAdmin, model.RoleHousekeeping))
	maint.PATCH("/rooms/:id/status", b.Rooms.UpdateRoomStatus)
}
