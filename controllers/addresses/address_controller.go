package addressController

import (
	"context"
	"time"

	"github.com/dhimanroyit/ssl-react-native-problem/models"
	"github.com/dhimanroyit/ssl-react-native-problem/responses"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Controller struct {
	addresses *mongo.Collection
}

func New(addresses *mongo.Collection) *Controller {
	return &Controller{addresses: addresses}
}

func (ac *Controller) AddAddress(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var reqBody struct {
		FullName      string `json:"fullName"`
		PhoneNumber   string `json:"phoneNumber"`
		StreetAddress string `json:"streetAddress"`
		City          string `json:"city"`
		ZipCode       string `json:"zipCode"`
	}

	if err := c.BodyParser(&reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request format",
			Result:  nil,
		})
	}

	if reqBody.PhoneNumber == "" || reqBody.StreetAddress == "" {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Phone number and street address are required",
			Result:  nil,
		})
	}

	userId := c.Locals("userId").(string)
	userObjId, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid user ID",
			Result:  nil,
		})
	}

	newAddress := models.Address{
		Id:            primitive.NewObjectID(),
		UserId:        userObjId,
		FullName:      reqBody.FullName,
		PhoneNumber:   reqBody.PhoneNumber,
		StreetAddress: reqBody.StreetAddress,
		City:          reqBody.City,
		ZipCode:       reqBody.ZipCode,
	}

	if _, err := ac.addresses.InsertOne(ctx, newAddress); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error adding address",
			Result:  nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Address added successfully",
		Result: &fiber.Map{
			"address": newAddress,
		},
	})
}

func (ac *Controller) GetAddresses(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userId := c.Locals("userId").(string)
	userObjId, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid user ID",
			Result:  nil,
		})
	}

	addresses := make([]models.Address, 0)
	cursor, err := ac.addresses.Find(ctx, bson.M{"userId": userObjId})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching addresses",
			Result:  nil,
		})
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var address models.Address
		if err := cursor.Decode(&address); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Error decoding address",
				Result:  nil,
			})
		}
		addresses = append(addresses, address)
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Addresses fetched successfully",
		Result: &fiber.Map{
			"addresses": addresses,
		},
	})
}

// SelectAddress marks one address as the user's checkout default and
// clears the flag on the rest.
func (ac *Controller) SelectAddress(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var reqBody struct {
		AddressID string `json:"addressId"`
	}

	if err := c.BodyParser(&reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request format",
			Result:  nil,
		})
	}

	addressObjId, err := primitive.ObjectIDFromHex(reqBody.AddressID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid address ID",
			Result:  nil,
		})
	}

	userId := c.Locals("userId").(string)
	userObjId, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid user ID",
			Result:  nil,
		})
	}

	if _, err := ac.addresses.UpdateMany(ctx,
		bson.M{"userId": userObjId},
		bson.M{"$set": bson.M{"isUserSelected": false}},
	); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error updating addresses",
			Result:  nil,
		})
	}

	result, err := ac.addresses.UpdateOne(ctx,
		bson.M{"_id": addressObjId, "userId": userObjId},
		bson.M{"$set": bson.M{"isUserSelected": true}},
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error selecting address",
			Result:  nil,
		})
	}
	if result.MatchedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
			Status:  fiber.StatusNotFound,
			Message: "Address not found or doesn't belong to user",
			Result:  nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Address selected successfully",
		Result:  nil,
	})
}
