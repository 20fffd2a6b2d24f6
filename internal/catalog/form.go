package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/lucysperfumery/admin/internal/models"
	"github.com/shopspring/decimal"
)

var ErrNoVariants = &ValidationError{Index: -1, Field: "Variants", Message: "Please add at least one option"}

// ValidationError is a form problem caught before any request is sent.
// Index is the offending variant row, or -1 for product-level fields.
type ValidationError struct {
	Index   int
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var variantMessages = map[string]string{
	"Name":  "All options must have a name",
	"Price": "All options must have a price greater than 0",
	"Stock": "All options must have a valid stock quantity",
}

var productMessages = map[string]string{
	"Name":     "Product name is required",
	"Category": "Category is required",
	"Price":    "Price cannot be negative",
	"Stock":    "Stock cannot be negative",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// Form is the editable state behind a create or edit. Mode decides whether
// Price and Stock or Variants are authoritative.
type Form struct {
	Name        string          `validate:"required,notblank"`
	Description string
	Category    string          `validate:"required,notblank"`
	Brand       string
	Price       decimal.Decimal `validate:"gte=0"`
	Stock       int             `validate:"gte=0"`
	IsActive    bool
	Mode        models.PricingMode
	Variants    []models.Variant

	loadedMode models.PricingMode
}

func NewForm() *Form {
	return &Form{
		IsActive:   true,
		Mode:       models.PricingFlat,
		loadedMode: models.PricingFlat,
	}
}

// FormFromProduct loads p for editing. A product flagged as variant-priced
// with no rows opens in variant mode with one blank row.
func FormFromProduct(p *models.Product) *Form {
	mode := p.PricingMode()
	variants := make([]models.Variant, len(p.Variants))
	copy(variants, p.Variants)

	f := &Form{
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Brand:       p.Brand,
		Price:       p.Price,
		Stock:       p.Stock,
		IsActive:    p.IsActive,
		Mode:        mode,
		Variants:    variants,
		loadedMode:  mode,
	}
	if mode == models.PricingVariant && len(f.Variants) == 0 {
		f.AddVariant()
	}
	return f
}

func (f *Form) VariantsEnabled() bool {
	return f.Mode == models.PricingVariant
}

// SetVariantsEnabled switches pricing mode. Turning variants off drops every
// row; turning them on with no rows seeds one blank row so the operator
// always has something to fill in.
func (f *Form) SetVariantsEnabled(enabled bool) {
	if !enabled {
		f.Mode = models.PricingFlat
		f.Variants = []models.Variant{}
		return
	}
	f.Mode = models.PricingVariant
	if len(f.Variants) == 0 {
		f.AddVariant()
	}
}

func (f *Form) AddVariant() {
	active := true
	f.Variants = append(f.Variants, models.Variant{
		Name:     "",
		Price:    decimal.Zero,
		Stock:    0,
		IsActive: &active,
	})
}

func (f *Form) RemoveVariant(i int) error {
	if i < 0 || i >= len(f.Variants) {
		return fmt.Errorf("no option at index %d", i)
	}
	f.Variants = append(f.Variants[:i], f.Variants[i+1:]...)
	return nil
}

func (f *Form) UpdateVariant(i int, fn func(*models.Variant)) error {
	if i < 0 || i >= len(f.Variants) {
		return fmt.Errorf("no option at index %d", i)
	}
	fn(&f.Variants[i])
	return nil
}

// Validate returns the first problem as a *ValidationError, checking the
// product fields before the variant rows.
func (f *Form) Validate() error {
	fields := []string{"Name", "Category"}
	if !f.VariantsEnabled() {
		fields = append(fields, "Price", "Stock")
	}
	if err := validate.StructPartial(f, fields...); err != nil {
		return toValidationError(err, -1, productMessages)
	}

	if !f.VariantsEnabled() {
		return nil
	}
	return ValidateVariants(f.Variants)
}

// ValidateVariants checks option rows on their own, before any product is
// loaded or sent.
func ValidateVariants(variants []models.Variant) error {
	if len(variants) == 0 {
		return ErrNoVariants
	}
	for i := range variants {
		if err := validate.Struct(&variants[i]); err != nil {
			return toValidationError(err, i, variantMessages)
		}
	}
	return nil
}

func toValidationError(err error, index int, messages map[string]string) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	first := fieldErrs[0]
	msg, ok := messages[first.Field()]
	if !ok {
		msg = fmt.Sprintf("%s is invalid", strings.ToLower(first.Field()))
	}
	return &ValidationError{Index: index, Field: first.Field(), Message: msg}
}

// DisplayStock is the stock the form would show: the variant total in
// variant mode, the flat field otherwise.
func (f *Form) DisplayStock() int {
	if !f.VariantsEnabled() {
		return f.Stock
	}
	total := 0
	for _, v := range f.Variants {
		total += v.Stock
	}
	return total
}

// Fields converts the form into a full create/update payload. Flat price
// and stock are only sent in flat mode; variant state is sent in variant
// mode, or to clear variants a loaded product used to have.
func (f *Form) Fields() ProductFields {
	fields := ProductFields{
		Name:     Ptr(strings.TrimSpace(f.Name)),
		Category: Ptr(f.Category),
		IsActive: Ptr(f.IsActive),
	}
	if f.Description != "" {
		fields.Description = Ptr(f.Description)
	}
	if f.Brand != "" {
		fields.Brand = Ptr(f.Brand)
	}

	if f.VariantsEnabled() {
		variants := make([]models.Variant, len(f.Variants))
		for i, v := range f.Variants {
			v.Name = strings.TrimSpace(v.Name)
			variants[i] = v
		}
		fields.HasVariants = Ptr(true)
		fields.Variants = &variants
		return fields
	}

	fields.Price = Ptr(f.Price)
	fields.Stock = Ptr(f.Stock)
	if f.loadedMode == models.PricingVariant {
		fields.HasVariants = Ptr(false)
		fields.Variants = &[]models.Variant{}
	}
	return fields
}
