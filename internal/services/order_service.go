package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/metrics"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/session"
	"storefront/pkg/rabbitmq"

	"github.com/sirupsen/logrus"
)

var (
	// ErrEmptyCart is returned when checking out a cart without lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrMissingPaymentDetails is returned when a checkout field is blank.
	ErrMissingPaymentDetails = errors.New("customer name, address and payment reference are required")
)

// CheckoutRequest carries the customer details entered on the cart page.
type CheckoutRequest struct {
	CustomerName    string `form:"customer_name"`
	CustomerAddress string `form:"customer_address"`
	PaymentRef      string `form:"payment_ref"`
}

// OrderEventPublisher announces orders to other systems.
type OrderEventPublisher interface {
	PublishOrderPaid(event rabbitmq.OrderPaidEvent) error
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	publisher   OrderEventPublisher
	log         logrus.FieldLogger
	now         func() time.Time
}

// NewOrderService creates a new OrderService. publisher may be nil, in
// which case no events are sent.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, publisher OrderEventPublisher, log logrus.FieldLogger) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
		log:         log,
		now:         time.Now,
	}
}

// Checkout turns the cart into a paid order and decrements stock. The cart
// is left untouched; the caller clears it on success.
func (s *OrderService) Checkout(cart session.Cart, req CheckoutRequest) (*models.Order, error) {
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerAddress = strings.TrimSpace(req.CustomerAddress)
	req.PaymentRef = strings.TrimSpace(req.PaymentRef)
	if req.CustomerName == "" || req.CustomerAddress == "" || req.PaymentRef == "" {
		return nil, ErrMissingPaymentDetails
	}

	lines, subtotal, err := resolveCart(s.productRepo, cart)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
			Price:     line.Product.Price, // Use price at the time of order creation
		})
	}

	order := &models.Order{
		CustomerName:    req.CustomerName,
		CustomerAddress: req.CustomerAddress,
		PaymentRef:      req.PaymentRef,
		Total:           subtotal.Add(CheckoutShipping(subtotal)),
		Paid:            true,
		CreatedAt:       s.now().UTC(),
		Items:           items,
	}

	if err := s.orderRepo.CreatePaid(order); err != nil {
		metrics.RecordCheckoutFailure()
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}
	metrics.RecordOrder(order.Total)

	logger := s.log.WithFields(logrus.Fields{"order_id": order.ID, "total": order.Total.StringFixed(2)})
	logger.Info("Order paid")
	s.publish(order, logger)

	return order, nil
}

func (s *OrderService) publish(order *models.Order, logger logrus.FieldLogger) {
	if s.publisher == nil {
		logger.Debug("Event publisher is not configured. Skipping order event.")
		return
	}

	event := rabbitmq.OrderPaidEvent{
		OrderID:   order.ID,
		Total:     order.Total.StringFixed(2),
		CreatedAt: order.CreatedAt,
	}
	for _, item := range order.Items {
		event.Items = append(event.Items, rabbitmq.OrderPaidItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price.StringFixed(2),
		})
	}
	if err := s.publisher.PublishOrderPaid(event); err != nil {
		logger.WithError(err).Warn("Failed to publish order paid event")
	}
}
