package routes

import (
	userController "github.com/dhimanroyit/ssl-react-native-problem/controllers/user"

	"github.com/gofiber/fiber/v2"
)

func UserRoute(app *fiber.App, uc *userController.Controller) {
	app.Post("/v1/users/signup", uc.UserSignUp)
	app.Post("/v1/users/signin", uc.UserSignIn)
}
