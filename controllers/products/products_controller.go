package productsController

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/dhimanroyit/ssl-react-native-problem/responses"
	"github.com/dhimanroyit/ssl-react-native-problem/store"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Controller struct {
	products store.ProductStore
}

func New(products store.ProductStore) *Controller {
	return &Controller{products: products}
}

func (pc *Controller) GetProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.ParseInt(c.Query("limit", "20"), 10, 64)
	if err != nil || limit < 1 {
		limit = 20
	}

	products, total, err := pc.products.List(ctx, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching products",
			Result:  nil,
		})
	}

	totalPages := (total + limit - 1) / limit

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Products fetched successfully",
		Result: &fiber.Map{
			"products":    products,
			"currentPage": page,
			"totalPages":  totalPages,
		},
	})
}

func (pc *Controller) GetProductById(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	productId := c.Params("id")
	productObjId, err := primitive.ObjectIDFromHex(productId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid product ID format",
			Result:  nil,
		})
	}

	product, err := pc.products.FindByID(ctx, productObjId)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
				Status:  fiber.StatusNotFound,
				Message: "Product not found",
				Result:  nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching product details",
			Result:  nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Product fetched successfully",
		Result: &fiber.Map{
			"product": product,
		},
	})
}
