package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type PricingMode string

const (
	PricingFlat    PricingMode = "flat"
	PricingVariant PricingMode = "variant"
)

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand,omitempty"`
	Image       string          `json:"image"`
	Stock       int             `json:"stock"`
	IsActive    bool            `json:"isActive"`
	HasVariants bool            `json:"hasVariants,omitempty"`
	Variants    []Variant       `json:"variants,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// PricingMode tells whether price and stock come from the base record or
// from the variant list.
func (p *Product) PricingMode() PricingMode {
	if len(p.Variants) > 0 || p.HasVariants {
		return PricingVariant
	}
	return PricingFlat
}

func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	aux := struct {
		*alias
		MongoID  string    `json:"_id"`
		Options  []Variant `json:"options"`
		Variants []Variant `json:"variants"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = aux.MongoID
	}
	p.Variants = aux.Variants
	if len(p.Variants) == 0 {
		p.Variants = aux.Options
	}
	return nil
}

type Variant struct {
	ID       string          `json:"id,omitempty"`
	Name     string          `json:"name" validate:"required,notblank"`
	Price    decimal.Decimal `json:"price" validate:"gt=0"`
	Stock    int             `json:"stock" validate:"gte=0"`
	SKU      string          `json:"sku,omitempty"`
	IsActive *bool           `json:"isActive,omitempty"`
}

func (v *Variant) UnmarshalJSON(data []byte) error {
	type alias Variant
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(v)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if v.ID == "" {
		v.ID = aux.MongoID
	}
	return nil
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusFailed    OrderStatus = "failed"
)

var OrderStatuses = []OrderStatus{OrderStatusPending, OrderStatusCompleted, OrderStatusFailed}

func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("invalid order status %q (want pending, completed or failed)", s)
	}
	return status, nil
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusFailed:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from s to next. The
// storefront allows any known status to be set from any other, including
// reopening completed or failed orders.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	return next.Valid()
}

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type OrderItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type OrderMetadata struct {
	DeliveryMethod      string `json:"deliveryMethod,omitempty"`
	DeliveryAddress     string `json:"deliveryAddress,omitempty"`
	Country             string `json:"country,omitempty"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
}

type Order struct {
	ID               string          `json:"id"`
	OrderNumber      string          `json:"orderNumber"`
	Customer         Customer        `json:"customer"`
	Items            []OrderItem     `json:"items"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	Currency         string          `json:"currency"`
	Status           OrderStatus     `json:"status"`
	PaymentReference string          `json:"paymentReference"`
	Metadata         *OrderMetadata  `json:"metadata,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func (o *Order) UnmarshalJSON(data []byte) error {
	type alias Order
	aux := struct {
		*alias
		MongoID           string `json:"_id"`
		PaystackReference string `json:"paystackReference"`
	}{alias: (*alias)(o)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if o.ID == "" {
		o.ID = aux.MongoID
	}
	if o.PaymentReference == "" {
		o.PaymentReference = aux.PaystackReference
	}
	return nil
}
