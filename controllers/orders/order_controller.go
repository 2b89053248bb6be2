package orderController

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/dhimanroyit/ssl-react-native-problem/models"
	"github.com/dhimanroyit/ssl-react-native-problem/responses"
	"github.com/dhimanroyit/ssl-react-native-problem/store"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Controller struct {
	orders store.OrderStore
}

func New(orders store.OrderStore) *Controller {
	return &Controller{orders: orders}
}

// GetOrders lists the authenticated user's orders, newest page first,
// optionally filtered by order status.
func (oc *Controller) GetOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userId, ok := c.Locals("userId").(string)
	if !ok || userId == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User ID not found in token",
			Result:  nil,
		})
	}

	userObjectID, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid user ID format",
			Result:  nil,
		})
	}

	page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.ParseInt(c.Query("limit", "10"), 10, 64)
	if err != nil || limit < 1 {
		limit = 10
	}

	opts := store.ListOptions{
		Page:   page,
		Limit:  limit,
		Status: models.OrderStatusType(c.Query("status", "")),
	}

	orders, total, err := oc.orders.ListByUser(ctx, userObjectID, opts)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch orders",
			Result:  nil,
		})
	}

	summaries := make([]fiber.Map, 0, len(orders))
	for _, order := range orders {
		items := make([]fiber.Map, 0, len(order.Carts))
		for _, item := range order.Carts {
			image := ""
			if len(item.Product.Images) > 0 {
				image = item.Product.Images[0]
			}
			items = append(items, fiber.Map{
				"name":     item.Product.Name,
				"price":    item.Price,
				"quantity": item.Quantity,
				"image":    image,
			})
		}

		summaries = append(summaries, fiber.Map{
			"id":            order.ID.Hex(),
			"items":         items,
			"status":        order.OrderStatus.Type,
			"paymentStatus": order.Payment.Status,
			"total":         order.GrandTotal,
			"createdAt":     order.CreatedAt,
		})
	}

	totalPages := (total + limit - 1) / limit

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Orders fetched successfully",
		Result: &fiber.Map{
			"orders":      summaries,
			"currentPage": page,
			"totalPages":  totalPages,
			"totalOrders": total,
		},
	})
}

// GetOrderById fetches one of the authenticated user's orders in full.
func (oc *Controller) GetOrderById(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userId, ok := c.Locals("userId").(string)
	if !ok || userId == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User ID not found in token",
			Result:  nil,
		})
	}

	orderId := c.Params("id")
	orderObjectID, err := primitive.ObjectIDFromHex(orderId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid order ID format",
			Result:  nil,
		})
	}

	userObjectID, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid user ID format",
			Result:  nil,
		})
	}

	order, err := oc.orders.FindByID(ctx, orderObjectID, userObjectID)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
				Status:  fiber.StatusNotFound,
				Message: "Order not found",
				Result:  nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch order",
			Result:  nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Order fetched successfully",
		Result: &fiber.Map{
			"order": order,
		},
	})
}
