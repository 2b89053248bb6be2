package paymentController

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dhimanroyit/ssl-react-native-problem/gateway"
	"github.com/dhimanroyit/ssl-react-native-problem/models"
	"github.com/dhimanroyit/ssl-react-native-problem/responses"
	"github.com/dhimanroyit/ssl-react-native-problem/store"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Controller brokers SSLCommerz sessions for checkout and reconciles the
// gateway's success/fail/cancel callbacks against stored orders.
type Controller struct {
	gateway   gateway.Gateway
	orders    store.OrderStore
	products  store.ProductStore
	serverURL string
	clientURL string
	log       *slog.Logger
}

func New(gw gateway.Gateway, orders store.OrderStore, products store.ProductStore, serverURL, clientURL string, log *slog.Logger) *Controller {
	return &Controller{
		gateway:   gw,
		orders:    orders,
		products:  products,
		serverURL: serverURL,
		clientURL: clientURL,
		log:       log,
	}
}

// CheckoutCartItem is one cart line as posted by the client. Name and
// category feed the gateway's display fields; the product itself is
// re-fetched from the catalog before the order is persisted.
type CheckoutCartItem struct {
	ProductID       string  `json:"productId"`
	ProductName     string  `json:"productName"`
	ProductCategory string  `json:"productCategory"`
	Quantity        int     `json:"quantity"`
	Price           float64 `json:"price"`
}

type CheckoutRequest struct {
	Amount          float64                `json:"amount"`
	DeliveryAddress models.DeliveryAddress `json:"deliveryAddress"`
	Carts           []CheckoutCartItem     `json:"carts"`
}

// newTransactionID returns 16 crypto-random bytes as uppercase hex. The
// caller never supplies the id; it correlates the order with exactly one
// gateway session.
func newTransactionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}

// PaymentWithOrder opens a gateway session for the requested amount and,
// once the gateway accepts it, persists a pending order referencing the
// generated transaction id. A rejected session persists nothing.
func (pc *Controller) PaymentWithOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
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

	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Result:  nil,
		})
	}

	if req.Amount <= 0 || len(req.Carts) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Amount and carts are required",
			Result:  nil,
		})
	}

	transactionId, err := newTransactionID()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to generate transaction id",
			Result:  nil,
		})
	}

	names := make([]string, 0, len(req.Carts))
	categories := make([]string, 0, len(req.Carts))
	for _, item := range req.Carts {
		names = append(names, item.ProductName)
		categories = append(categories, item.ProductCategory)
	}

	customerName := req.DeliveryAddress.FullName
	if customerName == "" {
		customerName = req.DeliveryAddress.PhoneNumber
	}

	sessionReq := gateway.SessionRequest{
		TotalAmount:      req.Amount,
		Currency:         "BDT",
		TranID:           transactionId,
		SuccessURL:       fmt.Sprintf("%s/v1/payment/success?tranId=%s", pc.serverURL, transactionId),
		FailURL:          fmt.Sprintf("%s/v1/payment/fail?tranId=%s", pc.serverURL, transactionId),
		CancelURL:        fmt.Sprintf("%s/v1/payment/cancel?tranId=%s", pc.serverURL, transactionId),
		ShippingMethod:   "Courier",
		ProductName:      strings.Join(names, ","),
		ProductCategory:  strings.Join(categories, " or "),
		ProductProfile:   "general",
		CustomerName:     customerName,
		CustomerEmail:    "customer@example.com",
		CustomerAddress:  req.DeliveryAddress.StreetAddress,
		CustomerCity:     "Dhaka",
		CustomerState:    "Dhaka",
		CustomerPostcode: "1000",
		CustomerCountry:  "Bangladesh",
		CustomerPhone:    req.DeliveryAddress.PhoneNumber,
	}

	sslRes, err := pc.gateway.InitiateSession(ctx, sessionReq)
	if err != nil {
		pc.log.Error("gateway session init failed", "tranId", transactionId, "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error reaching payment gateway",
			Result:  nil,
		})
	}

	if sslRes.Status != gateway.StatusSuccess {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: sslRes.FailedReason,
			Result:  nil,
		})
	}

	// Snapshot every cart line's product from the catalog so the order
	// keeps the price and name as sold. Any lookup failure fails the
	// whole request and no order is written.
	cartItems := make([]models.CartItem, 0, len(req.Carts))
	for _, item := range req.Carts {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid product ID format",
				Result:  nil,
			})
		}

		product, err := pc.products.FindByID(ctx, productID)
		if err != nil {
			pc.log.Error("catalog lookup failed during checkout", "tranId", transactionId, "productId", item.ProductID, "err", err)
			return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Error fetching product details",
				Result:  nil,
			})
		}

		cartItems = append(cartItems, models.CartItem{
			ProductID: productID,
			Product:   *product,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	now := time.Now()
	order := models.Order{
		ID:              primitive.NewObjectID(),
		UserID:          userObjectID,
		GrandTotal:      req.Amount,
		DeliveryAddress: req.DeliveryAddress,
		Carts:           cartItems,
		Payment: models.Payment{
			TransactionID: transactionId,
			SSLSessionKey: sslRes.SessionKey,
		},
		OrderStatus: models.OrderStatus{
			Type:    models.OrderPending,
			Message: "waiting for payment",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The insert is not retried; a blind retry could map one transaction
	// id to two orders.
	if err := pc.orders.Insert(ctx, &order); err != nil {
		pc.log.Error("order insert failed", "tranId", transactionId, "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create order",
			Result:  nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "payment url get successfully",
		Result: &fiber.Map{
			"gatewayUrl": sslRes.GatewayPageURL,
		},
	})
}

// PaymentSuccess handles the gateway's success redirect. The transaction
// is re-verified against the gateway before the order is resolved, and
// the browser is always redirected somewhere, even on internal error.
func (pc *Controller) PaymentSuccess(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	failRedirect := fmt.Sprintf("%s/checkout?status=fail", pc.clientURL)

	tranId := c.Query("tranId")
	if tranId == "" {
		return c.Redirect(failRedirect, fiber.StatusFound)
	}

	txn, err := pc.gateway.QueryTransaction(ctx, tranId)
	if err != nil {
		pc.log.Error("transaction query failed", "tranId", tranId, "err", err)
		return c.Redirect(failRedirect, fiber.StatusFound)
	}
	if txn.Found != 1 || txn.Status != gateway.StatusValid {
		pc.log.Warn("success callback without a valid transaction", "tranId", tranId, "found", txn.Found, "status", txn.Status)
		return c.Redirect(failRedirect, fiber.StatusFound)
	}

	order, err := pc.orders.FindByTransactionID(ctx, tranId)
	if err != nil {
		// Unrecoverable: the order must have been created during
		// checkout for this transaction id to exist at the gateway.
		pc.log.Error("order missing for valid transaction", "tranId", tranId, "err", err)
		return c.Redirect(failRedirect, fiber.StatusFound)
	}

	paidAmount := txn.Amount
	payableAmount := order.GrandTotal - paidAmount
	paymentStatus := models.PaymentPartial
	switch {
	case paidAmount == order.GrandTotal:
		paymentStatus = models.PaymentPaid
	case paidAmount > order.GrandTotal:
		// The gateway confirmed more than was owed. Keep the reported
		// figure on record, owe nothing further.
		pc.log.Warn("gateway reported overpayment", "tranId", tranId, "paid", paidAmount, "grandTotal", order.GrandTotal)
		payableAmount = 0
		paymentStatus = models.PaymentPaid
	}

	applied, err := pc.orders.Resolve(ctx, tranId, store.Resolution{
		OrderStatus:   models.OrderStatus{Type: models.OrderSuccess, Message: "successfully done"},
		PaymentStatus: paymentStatus,
		Paid:          models.PaymentAmount{Amount: paidAmount, Method: models.MethodSSLCommerce},
		Payable:       models.PaymentAmount{Amount: payableAmount, Method: models.MethodCashOnDelivery},
	})
	if err != nil {
		pc.log.Error("order update failed on success callback", "tranId", tranId, "err", err)
		return c.Redirect(failRedirect, fiber.StatusFound)
	}
	if !applied {
		pc.log.Info("replayed success callback ignored", "tranId", tranId)
	}

	return c.Redirect(fmt.Sprintf("%s/order-done?orderId=%s", pc.clientURL, order.ID.Hex()), fiber.StatusFound)
}

// PaymentFail handles the gateway's fail redirect.
func (pc *Controller) PaymentFail(c *fiber.Ctx) error {
	return pc.resolveUnpaid(c, models.OrderFail, "failed by ssl", "fail")
}

// PaymentCancel handles the user abandoning the hosted payment page.
func (pc *Controller) PaymentCancel(c *fiber.Ctx) error {
	return pc.resolveUnpaid(c, models.OrderCancel, "canceled by user when payment", "cancel")
}

func (pc *Controller) resolveUnpaid(c *fiber.Ctx, statusType models.OrderStatusType, message, clientStatus string) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	redirect := fmt.Sprintf("%s/checkout?status=%s", pc.clientURL, clientStatus)

	tranId := c.Query("tranId")
	if tranId == "" {
		return c.Redirect(redirect, fiber.StatusFound)
	}

	order, err := pc.orders.FindByTransactionID(ctx, tranId)
	if err != nil {
		pc.log.Error("order lookup failed on callback", "tranId", tranId, "outcome", string(statusType), "err", err)
		return c.Redirect(redirect, fiber.StatusFound)
	}

	applied, err := pc.orders.Resolve(ctx, tranId, store.Resolution{
		OrderStatus:   models.OrderStatus{Type: statusType, Message: message},
		PaymentStatus: models.PaymentUnpaid,
		Paid:          models.PaymentAmount{Amount: 0, Method: models.MethodSSLCommerce},
		Payable:       models.PaymentAmount{Amount: order.GrandTotal, Method: models.MethodCashOnDelivery},
	})
	if err != nil {
		pc.log.Error("order update failed on callback", "tranId", tranId, "outcome", string(statusType), "err", err)
	} else if !applied {
		pc.log.Info("replayed callback ignored", "tranId", tranId, "outcome", string(statusType))
	}

	return c.Redirect(redirect, fiber.StatusFound)
}
