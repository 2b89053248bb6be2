package routes

import (
	productsController "github.com/dhimanroyit/ssl-react-native-problem/controllers/products"

	"github.com/gofiber/fiber/v2"
)

func ProductsRoute(app *fiber.App, pc *productsController.Controller) {
	app.Get("/v1/products", pc.GetProducts)
	app.Get("/v1/products/:id", pc.GetProductById)
}
