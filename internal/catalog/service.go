package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lucysperfumery/admin/internal/apiclient"
	"github.com/lucysperfumery/admin/internal/imagefile"
	"github.com/lucysperfumery/admin/internal/models"
	"github.com/shopspring/decimal"
)

const (
	ListLimit    = 1000
	productsPath = "/api/products"
)

var ErrMissingID = errors.New("product id is required")

// ProductFields is a create or update payload. A nil field is left out of
// the request entirely, which the API treats as "unchanged".
type ProductFields struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *string
	Brand       *string
	Stock       *int
	IsActive    *bool
	HasVariants *bool
	Variants    *[]models.Variant
}

func Ptr[T any](v T) *T { return &v }

type Service struct {
	client *apiclient.Client
}

func NewService(client *apiclient.Client) *Service {
	return &Service{client: client}
}

func (s *Service) List(ctx context.Context) ([]models.Product, error) {
	body, err := s.client.Get(ctx, productsPath, url.Values{"limit": {strconv.Itoa(ListLimit)}})
	if err != nil {
		return nil, apiclient.Normalize(err)
	}
	products, err := apiclient.DecodeList[models.Product](body)
	if err != nil {
		return nil, apiclient.Normalize(err)
	}
	return products, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Product, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	body, err := s.client.Get(ctx, productPath(id), nil)
	if err != nil {
		return nil, apiclient.Normalize(err)
	}
	return decodeProduct(body)
}

func (s *Service) Create(ctx context.Context, fields ProductFields, image *imagefile.Image) (*models.Product, error) {
	form, err := encodeFields(fields, image)
	if err != nil {
		return nil, err
	}
	body, err := s.client.SendMultipart(ctx, http.MethodPost, productsPath, form)
	if err != nil {
		return nil, apiclient.Normalize(err)
	}
	return decodeProduct(body)
}

func (s *Service) Update(ctx context.Context, id string, fields ProductFields, image *imagefile.Image) (*models.Product, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	form, err := encodeFields(fields, image)
	if err != nil {
		return nil, err
	}
	body, err := s.client.SendMultipart(ctx, http.MethodPut, productPath(id), form)
	if err != nil {
		return nil, apiclient.Normalize(err)
	}
	return decodeProduct(body)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}
	if _, err := s.client.Delete(ctx, productPath(id)); err != nil {
		return apiclient.Normalize(err)
	}
	return nil
}

func (s *Service) SetActive(ctx context.Context, id string, active bool) error {
	_, err := s.Update(ctx, id, ProductFields{IsActive: &active}, nil)
	return err
}

func productPath(id string) string {
	return productsPath + "/" + url.PathEscape(id)
}

func decodeProduct(body []byte) (*models.Product, error) {
	product := &models.Product{}
	if err := apiclient.DecodeData(body, product); err != nil {
		return nil, apiclient.Normalize(err)
	}
	return product, nil
}

func encodeFields(fields ProductFields, image *imagefile.Image) (*apiclient.Form, error) {
	form := &apiclient.Form{}

	if fields.Name != nil {
		form.Add("name", *fields.Name)
	}
	if fields.Description != nil {
		form.Add("description", *fields.Description)
	}
	if fields.Price != nil {
		form.Add("price", fields.Price.String())
	}
	if fields.Category != nil {
		form.Add("category", *fields.Category)
	}
	if fields.Brand != nil {
		form.Add("brand", *fields.Brand)
	}
	if fields.Stock != nil {
		form.Add("stock", strconv.Itoa(*fields.Stock))
	}
	if fields.IsActive != nil {
		form.Add("isActive", strconv.FormatBool(*fields.IsActive))
	}
	if fields.HasVariants != nil {
		form.Add("hasVariants", strconv.FormatBool(*fields.HasVariants))
	}
	if fields.Variants != nil {
		data, err := json.Marshal(wireVariants(*fields.Variants))
		if err != nil {
			return nil, fmt.Errorf("encode variants: %w", err)
		}
		form.Add("variants", string(data))
	}

	if image != nil {
		form.AddFile(apiclient.File{
			Field:       "image",
			Filename:    image.Filename,
			ContentType: image.ContentType,
			Data:        image.Data,
		})
	}

	return form, nil
}

type wireVariant struct {
	ID       string      `json:"id,omitempty"`
	Name     string      `json:"name"`
	Price    json.Number `json:"price"`
	Stock    int         `json:"stock"`
	SKU      string      `json:"sku,omitempty"`
	IsActive *bool       `json:"isActive,omitempty"`
}

// wireVariants sends prices as JSON numbers rather than decimal's default
// quoted strings.
func wireVariants(variants []models.Variant) []wireVariant {
	out := make([]wireVariant, 0, len(variants))
	for _, v := range variants {
		out = append(out, wireVariant{
			ID:       v.ID,
			Name:     v.Name,
			Price:    json.Number(v.Price.String()),
			Stock:    v.Stock,
			SKU:      v.SKU,
			IsActive: v.IsActive,
		})
	}
	return out
}
