package routes

import (
	addressController "github.com/dhimanroyit/ssl-react-native-problem/controllers/addresses"
	"github.com/dhimanroyit/ssl-react-native-problem/middlewares"

	"github.com/gofiber/fiber/v2"
)

func AddressRoutes(app *fiber.App, ac *addressController.Controller) {
	app.Post("/v1/addresses", middlewares.AuthMiddleware, ac.AddAddress)
	app.Get("/v1/addresses", middlewares.AuthMiddleware, ac.GetAddresses)
	app.Put("/v1/addresses/select", middlewares.AuthMiddleware, ac.SelectAddress)
}
