package services

import (
	"encoding/json"
	"log"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// EventPublisher publishes order lifecycle events to a message broker.
// A nil publisher disables publishing.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
	}
}

// CreateOrderFromCart converts the user's cart into an order. The cart
// must exist and hold at least one line; the whole conversion is one
// transaction in the repository. There is no idempotency key: a second
// call while items remain in the cart produces a second order.
func (s *OrderService) CreateOrderFromCart(userID, shippingAddress, phone string) (*models.Order, error) {
	if shippingAddress == "" {
		return nil, apperrors.Validation("shipping address is required")
	}
	if phone == "" {
		return nil, apperrors.Validation("phone is required")
	}

	order, err := s.orderRepo.CreateFromCart(userID, shippingAddress, phone)
	if err != nil {
		return nil, err
	}

	s.publishEvent("order.created", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"user_id":      order.UserID,
		"status":       order.Status,
		"total_amount": order.TotalAmount,
	})

	return order, nil
}

// GetUserOrders retrieves the caller's orders, newest first.
func (s *OrderService) GetUserOrders(userID string) ([]models.Order, error) {
	return s.orderRepo.ListByUser(userID)
}

// GetUserOrder retrieves one of the caller's orders. Other users'
// orders look absent.
func (s *OrderService) GetUserOrder(userID, orderID string) (*models.Order, error) {
	return s.orderRepo.GetByUserAndID(userID, orderID)
}

// UpdateOrderStatus sets an order's status. The status must be a
// member of the fixed set; any member may move to any other.
func (s *OrderService) UpdateOrderStatus(orderID, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, apperrors.Validation("invalid order status: %s", status)
	}

	if err := s.orderRepo.UpdateStatus(orderID, models.OrderStatus(status)); err != nil {
		return nil, err
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	s.publishEvent("order.status_updated", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"status":       order.Status,
	})

	return order, nil
}

// publishEvent is best-effort: broker failures are logged, never
// surfaced to the caller.
func (s *OrderService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.publisher.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
