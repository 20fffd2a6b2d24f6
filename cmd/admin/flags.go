package main

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucysperfumery/admin/internal/catalog"
	"github.com/lucysperfumery/admin/internal/models"
	"github.com/shopspring/decimal"
)

var errFlatFieldsWithVariants = errors.New("-price and -stock do not apply to a product priced by options; pass -no-variants to switch to a single price")

// variantFlag collects repeated -variant "name:price:stock[:sku]" values.
type variantFlag []models.Variant

func (v *variantFlag) String() string {
	parts := make([]string, len(*v))
	for i, variant := range *v {
		parts[i] = variant.Name
	}
	return strings.Join(parts, ", ")
}

func (v *variantFlag) Set(s string) error {
	variant, err := parseVariant(s)
	if err != nil {
		return err
	}
	*v = append(*v, variant)
	return nil
}

// parseVariant reads "name:price:stock" with an optional trailing ":sku".
// Blank names and non-positive prices parse fine and are left to form
// validation so the operator sees the usual messages.
func parseVariant(s string) (models.Variant, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return models.Variant{}, fmt.Errorf("option %q must look like name:price:stock[:sku]", s)
	}

	price, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return models.Variant{}, fmt.Errorf("option %q has an invalid price", s)
	}
	stock, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return models.Variant{}, fmt.Errorf("option %q has an invalid stock quantity", s)
	}

	active := true
	variant := models.Variant{
		Name:     strings.TrimSpace(parts[0]),
		Price:    price,
		Stock:    stock,
		IsActive: &active,
	}
	if len(parts) == 4 {
		variant.SKU = strings.TrimSpace(parts[3])
	}
	return variant, nil
}

// productFlags are shared by products create and products update.
type productFlags struct {
	name        string
	description string
	category    string
	brand       string
	price       string
	stock       int
	active      bool
	image       string
	variants    variantFlag
	noVariants  bool

	set map[string]bool
}

func (p *productFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&p.name, "name", "", "Product name")
	fs.StringVar(&p.description, "description", "", "Product description")
	fs.StringVar(&p.category, "category", "", "Category, e.g. Men, Women, Unisex")
	fs.StringVar(&p.brand, "brand", "", "Brand")
	fs.StringVar(&p.price, "price", "", "Flat price, e.g. 149.99")
	fs.IntVar(&p.stock, "stock", 0, "Flat stock quantity")
	fs.BoolVar(&p.active, "active", true, "List the product in the storefront")
	fs.StringVar(&p.image, "image", "", "Path to a product image (max 5MB)")
	fs.Var(&p.variants, "variant", `Size/price option "name:price:stock[:sku]" (repeatable, enables option pricing)`)
	fs.BoolVar(&p.noVariants, "no-variants", false, "Switch back to a single flat price and stock")
}

// parsed records which flags were given so updates only touch those fields.
func (p *productFlags) parsed(fs *flag.FlagSet) error {
	p.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { p.set[f.Name] = true })

	if p.set["variant"] && p.noVariants {
		return errors.New("-variant and -no-variants cannot be combined")
	}
	return nil
}

func (p *productFlags) touchesVariants() bool {
	return p.set["variant"] || p.set["no-variants"]
}

func (p *productFlags) apply(form *catalog.Form) error {
	if p.set["name"] {
		form.Name = p.name
	}
	if p.set["description"] {
		form.Description = p.description
	}
	if p.set["category"] {
		form.Category = p.category
	}
	if p.set["brand"] {
		form.Brand = p.brand
	}
	if p.set["price"] {
		price, err := decimal.NewFromString(strings.TrimSpace(p.price))
		if err != nil {
			return fmt.Errorf("invalid price %q", p.price)
		}
		form.Price = price
	}
	if p.set["stock"] {
		form.Stock = p.stock
	}
	if p.set["active"] {
		form.IsActive = p.active
	}

	switch {
	case p.set["variant"]:
		form.SetVariantsEnabled(true)
		form.Variants = append([]models.Variant(nil), p.variants...)
	case p.noVariants:
		form.SetVariantsEnabled(false)
	}

	if form.VariantsEnabled() && (p.set["price"] || p.set["stock"]) {
		return errFlatFieldsWithVariants
	}
	return nil
}

// partialFields sends just the plain fields the operator changed.
func (p *productFlags) partialFields(form *catalog.Form) catalog.ProductFields {
	var fields catalog.ProductFields
	if p.set["name"] {
		fields.Name = catalog.Ptr(strings.TrimSpace(form.Name))
	}
	if p.set["description"] {
		fields.Description = catalog.Ptr(form.Description)
	}
	if p.set["category"] {
		fields.Category = catalog.Ptr(form.Category)
	}
	if p.set["brand"] {
		fields.Brand = catalog.Ptr(form.Brand)
	}
	if p.set["price"] {
		fields.Price = catalog.Ptr(form.Price)
	}
	if p.set["stock"] {
		fields.Stock = catalog.Ptr(form.Stock)
	}
	if p.set["active"] {
		fields.IsActive = catalog.Ptr(form.IsActive)
	}
	return fields
}

// parseWithID accepts the id either before or after the flags.
func parseWithID(fs *flag.FlagSet, args []string) (string, error) {
	var id string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		id, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if id == "" {
		id = fs.Arg(0)
	}
	if id == "" {
		fs.Usage()
		return "", fmt.Errorf("%s requires an id", fs.Name())
	}
	return id, nil
}
