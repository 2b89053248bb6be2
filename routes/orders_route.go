package routes

import (
	orderController "github.com/dhimanroyit/ssl-react-native-problem/controllers/orders"
	"github.com/dhimanroyit/ssl-react-native-problem/middlewares"

	"github.com/gofiber/fiber/v2"
)

func OrderRoutes(app *fiber.App, oc *orderController.Controller) {
	app.Get("/v1/orders", middlewares.AuthMiddleware, oc.GetOrders)
	app.Get("/v1/orders/:id", middlewares.AuthMiddleware, oc.GetOrderById)
}
