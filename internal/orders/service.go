package orders

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lucysperfumery/admin/internal/apiclient"
	"github.com/lucysperfumery/admin/internal/models"
)

const (
	ListLimit  = 1000
	ordersPath = "/api/orders"
)

var ErrMissingID = errors.New("order id is required")

type Service struct {
	client *apiclient.Client
}

func NewService(client *apiclient.Client) *Service {
	return &Service{client: client}
}

// List returns orders in whatever order the API sent them.
func (s *Service) List(ctx context.Context) ([]models.Order, error) {
	body, err := s.client.Get(ctx, ordersPath, url.Values{"limit": {strconv.Itoa(ListLimit)}})
	if err != nil {
		return nil, apiclient.Normalize(err)
	}
	orders, err := apiclient.DecodeList[models.Order](body)
	if err != nil {
		return nil, apiclient.Normalize(err)
	}
	return orders, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Order, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	body, err := s.client.Get(ctx, orderPath(id), nil)
	if err != nil {
		return nil, apiclient.Normalize(err)
	}
	return decodeOrder(body)
}

// SetStatus changes only the status and returns the order as the API now
// holds it.
func (s *Service) SetStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	if _, err := models.ParseOrderStatus(string(status)); err != nil {
		return nil, err
	}

	body, err := s.client.SendJSON(ctx, http.MethodPatch, orderPath(id)+"/status", struct {
		Status models.OrderStatus `json:"status"`
	}{status})
	if err != nil {
		return nil, apiclient.Normalize(err)
	}
	return decodeOrder(body)
}

func orderPath(id string) string {
	return ordersPath + "/" + url.PathEscape(id)
}

func decodeOrder(body []byte) (*models.Order, error) {
	order := &models.Order{}
	if err := apiclient.DecodeData(body, order); err != nil {
		return nil, apiclient.Normalize(err)
	}
	return order, nil
}
