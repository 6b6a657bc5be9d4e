package route

import (
	"marketplace-service/src/internal/delivery/http"
	"marketplace-service/src/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouteConfig struct {
	App              *fiber.App
	UserController   *http.UserController
	OrderController  *http.OrderController
	WalletController *http.WalletController
	AdminController  *http.AdminController
	TicketController *http.TicketController
	ChatController   *http.ChatController
	AuthMiddleware   fiber.Handler
	ActiveMiddleware fiber.Handler
}

func (c *RouteConfig) Setup() {
	c.App.Use(middleware.NewLogger())
	c.App.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.SendString("OK")
	})
	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	c.SetupAuthRoute()
	c.SetupAdminRoute()
}

func (c *RouteConfig) SetupAuthRoute() {
	c.App.Use(c.AuthMiddleware)
	c.App.Use(c.ActiveMiddleware)
	c.App.Get("/users/v1/profile", c.UserController.GetProfile)

	c.App.Get("/orders/v1", c.OrderController.ListOrders)
	c.App.Get("/orders/v1/:orderId", c.OrderController.GetOrder)
	c.App.Post("/orders/v1/:orderId/deliver", c.OrderController.DeliverCredentials)
	c.App.Get("/orders/v1/:orderId/credentials", c.OrderController.RetrieveCredentials)
	c.App.Post("/orders/v1/:orderId/confirm", c.OrderController.ConfirmReceipt)

	c.App.Get("/wallet/v1/fees", c.WalletController.QuoteFee)
	c.App.Post("/wallet/v1/deposits", c.WalletController.SubmitDeposit)
	c.App.Post("/wallet/v1/withdrawals", c.WalletController.SubmitWithdraw)

	c.App.Post("/tickets/v1", c.TicketController.CreateTicket)
	c.App.Get("/tickets/v1/mine", c.TicketController.ListMyTickets)

	c.App.Post("/chats/v1/messages", c.ChatController.SendMessage)
	c.App.Get("/chats/v1/:otherId/messages", c.ChatController.History)
	c.App.Get("/chats/v1/:otherId/last", c.ChatController.LastMessage)
}

func (c *RouteConfig) SetupAdminRoute() {
	admin := c.App.Group("/admin/v1", middleware.VerifyAdmin())

	admin.Get("/requests/:kind", c.AdminController.ListRequests)
	admin.Get("/requests/:kind/export", c.AdminController.ExportRequests)
	admin.Post("/requests/:kind/:requestId/approve", c.AdminController.ApproveRequest)
	admin.Post("/requests/:kind/:requestId/reject", c.AdminController.RejectRequest)
	admin.Patch("/requests/:kind/:requestId/notes", c.AdminController.UpdateAdminNotes)

	admin.Get("/tickets", c.TicketController.ListTickets)
	admin.Post("/tickets/:ticketId/respond", c.TicketController.Respond)
	admin.Patch("/tickets/:ticketId/status", c.TicketController.UpdateStatus)
}
