package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"

	"github.com/cableworks/storefront-api/internal/dto"
	"github.com/cableworks/storefront-api/internal/model"
	"github.com/cableworks/storefront-api/internal/repository"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrEmailRequired = errors.New("email is required")
	ErrPaymentFailed = errors.New("payment failed")
)

type CheckoutService struct {
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	amqpCh      *amqp.Channel
	log         *slog.Logger
}

func NewCheckoutService(
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	amqpCh *amqp.Channel,
	log *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
		amqpCh:      amqpCh,
		log:         log,
	}
}

// Checkout places an order for the authenticated user when userID is set,
// otherwise for a guest identified by the shipping email. Cart lines whose
// product no longer exists are dropped from the order; the frontend has
// always relied on that.
func (s *CheckoutService) Checkout(ctx context.Context, userID *uuid.UUID, req dto.CheckoutRequest) (*model.Order, error) {
	if len(req.Cart) == 0 {
		return nil, ErrEmptyCart
	}

	user, err := s.resolveUser(ctx, userID, req.Shipping)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	var items []model.OrderItem
	for _, line := range req.Cart {
		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("get product: %w", err)
		}
		if product == nil {
			continue
		}
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, model.OrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
	}

	if err := s.takePayment(ctx, user, total); err != nil {
		return nil, err
	}

	order := &model.Order{
		UserID: user.ID,
		Status: model.OrderStatusPaid,
		Total:  total,
		Items:  items,
	}
	if err := s.orderRepo.CreateWithItems(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.publishPlaced(ctx, order, user)
	return order, nil
}

func (s *CheckoutService) resolveUser(ctx context.Context, userID *uuid.UUID, shipping dto.ShippingInfo) (*model.User, error) {
	if userID != nil {
		user, err := s.userRepo.GetByID(ctx, *userID)
		if err != nil {
			return nil, fmt.Errorf("get user: %w", err)
		}
		if user == nil {
			return nil, ErrInvalidCredentials
		}
		if shippingComplete(shipping) {
			user.Name = &shipping.Name
			user.Street = &shipping.Street
			user.Postcode = &shipping.Postcode
			user.City = &shipping.City
			if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
				return nil, fmt.Errorf("update profile: %w", err)
			}
		}
		return user, nil
	}

	if shipping.Email == "" {
		return nil, ErrEmailRequired
	}
	guest, err := s.userRepo.GetGuestByEmail(ctx, shipping.Email)
	if err != nil {
		return nil, fmt.Errorf("get guest: %w", err)
	}
	if guest == nil {
		guest = &model.User{
			Email:   shipping.Email,
			IsGuest: true,
			Role:    model.RoleCustomer,
		}
		if err := s.userRepo.Create(ctx, guest); err != nil {
			return nil, fmt.Errorf("create guest: %w", err)
		}
	}
	return guest, nil
}

func shippingComplete(s dto.ShippingInfo) bool {
	return s.Name != "" && s.Street != "" && s.Postcode != "" && s.City != ""
}

// takePayment is a stub: there is no payment provider behind it yet. The
// rejection path stays wired so handlers keep the 402 mapping exercised.
func (s *CheckoutService) takePayment(_ context.Context, _ *model.User, _ decimal.Decimal) error {
	return nil
}

// publishPlaced is best effort. The order is already committed; a broker
// outage must not fail the checkout.
func (s *CheckoutService) publishPlaced(ctx context.Context, order *model.Order, user *model.User) {
	if s.amqpCh == nil {
		return
	}
	msg, err := json.Marshal(model.OrderPlacedMessage{
		OrderID: order.ID, UserID: user.ID, Email: user.Email,
	})
	if err != nil {
		return
	}
	if err := s.amqpCh.PublishWithContext(ctx, "", "orders", false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         msg,
		DeliveryMode: amqp.Persistent,
	}); err != nil {
		s.log.Error("publish order placed", "order_id", order.ID, "error", err)
	}
}
