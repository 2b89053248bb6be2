package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/dhimanroyit/ssl-react-native-problem/configs"
	addressController "github.com/dhimanroyit/ssl-react-native-problem/controllers/addresses"
	orderController "github.com/dhimanroyit/ssl-react-native-problem/controllers/orders"
	paymentController "github.com/dhimanroyit/ssl-react-native-problem/controllers/payment"
	productsController "github.com/dhimanroyit/ssl-react-native-problem/controllers/products"
	userController "github.com/dhimanroyit/ssl-react-native-problem/controllers/user"
	"github.com/dhimanroyit/ssl-react-native-problem/gateway"
	"github.com/dhimanroyit/ssl-react-native-problem/routes"
	"github.com/dhimanroyit/ssl-react-native-problem/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	app := fiber.New()
	app.Use(logger.New())

	appLog := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	client := configs.ConnectDB()

	orders := store.NewOrderStore(configs.GetCollection(client, "orders"))
	products := store.NewProductStore(configs.GetCollection(client, "products"))

	sslGateway := gateway.NewClient(
		configs.EnvSSLStoreID(),
		configs.EnvSSLStorePassword(),
		configs.EnvSSLIsLive(),
	)

	routes.PaymentRoutes(app, paymentController.New(
		sslGateway,
		orders,
		products,
		configs.EnvServerURL(),
		configs.EnvClientURL(),
		appLog,
	))
	routes.OrderRoutes(app, orderController.New(orders))
	routes.UserRoute(app, userController.New(configs.GetCollection(client, "users")))
	routes.AddressRoutes(app, addressController.New(configs.GetCollection(client, "addresses")))
	routes.ProductsRoute(app, productsController.New(products))

	if err := app.Listen(":3000"); err != nil {
		log.Fatal(err)
	}
}
