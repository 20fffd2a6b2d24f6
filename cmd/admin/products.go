package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lucysperfumery/admin/internal/catalog"
	"github.com/lucysperfumery/admin/internal/imagefile"
	"go.uber.org/zap"
)

func runProducts(a *app, args []string) error {
	if len(args) < 1 {
		return productsUsage()
	}
	if err := a.auth.Require(); err != nil {
		return err
	}
	switch args[0] {
	case "list":
		return runProductsList(a, args[1:])
	case "get":
		return runProductsGet(a, args[1:])
	case "create":
		return runProductsCreate(a, args[1:])
	case "update":
		return runProductsUpdate(a, args[1:])
	case "delete":
		return runProductsDelete(a, args[1:])
	case "activate":
		return runProductsSetActive(a, args[1:], true)
	case "deactivate":
		return runProductsSetActive(a, args[1:], false)
	default:
		return productsUsage()
	}
}

func productsUsage() error {
	fmt.Fprintf(os.Stderr, `Usage: admin products <subcommand> [options]

Subcommands:
  list         List products (-q filters by name or category)
  get          Show one product with its options
  create       Create a product
  update       Change fields of an existing product
  delete       Delete a product
  activate     Show a product in the storefront
  deactivate   Hide a product from the storefront
`)
	return fmt.Errorf("products subcommand is required")
}

func runProductsList(a *app, args []string) error {
	fs := flag.NewFlagSet("products list", flag.ContinueOnError)
	query := fs.String("q", "", "Only show products whose name or category contains this text")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: admin products list [-q <text>]\n\nList the catalog.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	products, err := a.products.List(a.ctx)
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	a.view.Products(catalog.Filter(products, *query))
	return nil
}

func runProductsGet(a *app, args []string) error {
	fs := flag.NewFlagSet("products get", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: admin products get <id>\n")
	}
	id, err := parseWithID(fs, args)
	if err != nil {
		return err
	}

	product, err := a.products.Get(a.ctx, id)
	if err != nil {
		return fmt.Errorf("load product: %w", err)
	}
	a.view.Product(product)
	return nil
}

func runProductsCreate(a *app, args []string) error {
	fs := flag.NewFlagSet("products create", flag.ContinueOnError)
	var pf productFlags
	pf.register(fs)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `Usage: admin products create -name <name> -category <category> [options]

Create a product. Give -price and -stock for a single flat price, or one
-variant per size for option pricing.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := pf.parsed(fs); err != nil {
		return err
	}

	form := catalog.NewForm()
	if err := pf.apply(form); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return err
	}
	image, err := loadImage(pf.image)
	if err != nil {
		return err
	}

	product, err := a.products.Create(a.ctx, form.Fields(), image)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	a.log.Info("product created", zap.String("product_id", product.ID))
	fmt.Fprintf(a.out, "Created product %s\n\n", product.ID)
	a.view.Product(product)
	return nil
}

func runProductsUpdate(a *app, args []string) error {
	fs := flag.NewFlagSet("products update", flag.ContinueOnError)
	var pf productFlags
	pf.register(fs)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `Usage: admin products update <id> [options]

Only the fields given are changed. Passing any -variant replaces the whole
option list; -no-variants clears it.

Options:
`)
		fs.PrintDefaults()
	}
	id, err := parseWithID(fs, args)
	if err != nil {
		return err
	}
	if err := pf.parsed(fs); err != nil {
		return err
	}
	if len(pf.set) == 0 {
		fs.Usage()
		return fmt.Errorf("nothing to update")
	}
	if pf.set["variant"] {
		if err := catalog.ValidateVariants(pf.variants); err != nil {
			return err
		}
	}

	current, err := a.products.Get(a.ctx, id)
	if err != nil {
		return fmt.Errorf("load product: %w", err)
	}
	form := catalog.FormFromProduct(current)
	if err := pf.apply(form); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return err
	}
	image, err := loadImage(pf.image)
	if err != nil {
		return err
	}

	fields := pf.partialFields(form)
	if pf.touchesVariants() {
		fields = form.Fields()
	}

	product, err := a.products.Update(a.ctx, id, fields, image)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	a.log.Info("product updated", zap.String("product_id", id))
	fmt.Fprintf(a.out, "Updated product %s\n\n", id)
	a.view.Product(product)
	return nil
}

func runProductsDelete(a *app, args []string) error {
	fs := flag.NewFlagSet("products delete", flag.ContinueOnError)
	yes := fs.Bool("yes", false, "Skip the confirmation prompt")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: admin products delete <id> [-yes]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	id, err := parseWithID(fs, args)
	if err != nil {
		return err
	}

	if !*yes && !a.confirm(fmt.Sprintf("Delete product %s? This cannot be undone.", id)) {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.products.Delete(a.ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	a.log.Info("product deleted", zap.String("product_id", id))
	fmt.Fprintf(a.out, "Deleted product %s\n", id)
	return nil
}

func runProductsSetActive(a *app, args []string, active bool) error {
	name := "products deactivate"
	if active {
		name = "products activate"
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: admin %s <id>\n", name)
	}
	id, err := parseWithID(fs, args)
	if err != nil {
		return err
	}

	if err := a.products.SetActive(a.ctx, id, active); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	state := "inactive"
	if active {
		state = "active"
	}
	fmt.Fprintf(a.out, "Product %s is now %s\n", id, state)
	return nil
}

func loadImage(path string) (*imagefile.Image, error) {
	if path == "" {
		return nil, nil
	}
	return imagefile.Load(path)
}

func promptConfirm(question string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", question)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
