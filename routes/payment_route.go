package routes

import (
	paymentController "github.com/dhimanroyit/ssl-react-native-problem/controllers/payment"
	"github.com/dhimanroyit/ssl-react-native-problem/middlewares"

	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App, pc *paymentController.Controller) {
	app.Post("/v1/payment", middlewares.AuthMiddleware, pc.PaymentWithOrder)

	// SSLCommerz redirects the user's browser here; the hosted page may
	// use either GET or a form POST depending on configuration.
	app.All("/v1/payment/success", pc.PaymentSuccess)
	app.All("/v1/payment/fail", pc.PaymentFail)
	app.All("/v1/payment/cancel", pc.PaymentCancel)
}
