// Package ui renders catalog and order state for the terminal.
package ui

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/lucysperfumery/admin/internal/catalog"
	"github.com/lucysperfumery/admin/internal/models"
)

var (
	green  = lipgloss.Color("#22c55e")
	yellow = lipgloss.Color("#eab308")
	red    = lipgloss.Color("#ef4444")
	gray   = lipgloss.Color("#6b7280")

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Printer writes views to w. Colour is only emitted when the caller knows w
// is a terminal.
type Printer struct {
	w     io.Writer
	color bool
}

func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color}
}

func (p *Printer) badge(text string, c color.Color) string {
	if !p.color {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c).Render(text)
}

func (p *Printer) title(text string) string {
	if !p.color {
		return text
	}
	return titleStyle.Render(text)
}

// StatusBadge colours an order status: completed green, pending yellow,
// failed red, anything else gray.
func (p *Printer) StatusBadge(status models.OrderStatus) string {
	switch status {
	case models.OrderStatusCompleted:
		return p.badge(string(status), green)
	case models.OrderStatusPending:
		return p.badge(string(status), yellow)
	case models.OrderStatusFailed:
		return p.badge(string(status), red)
	default:
		return p.badge(string(status), gray)
	}
}

func (p *Printer) stockBadge(product *models.Product) string {
	text := strconv.Itoa(catalog.DisplayStock(product))
	if catalog.LowStock(product) {
		return p.badge(text, red)
	}
	return text
}

func (p *Printer) activeBadge(active bool) string {
	if active {
		return p.badge("active", green)
	}
	return p.badge("inactive", gray)
}

func (p *Printer) render(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(p.w, t.String())
}

func (p *Printer) Products(products []models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(p.w, "No products found.")
		return
	}
	rows := make([][]string, 0, len(products))
	for i := range products {
		prod := &products[i]
		name := prod.Name
		if n := len(prod.Variants); n > 0 {
			name += fmt.Sprintf(" (%d options)", n)
		}
		rows = append(rows, []string{
			prod.ID,
			name,
			prod.Category,
			catalog.DisplayPrice(prod),
			p.stockBadge(prod),
			p.activeBadge(prod.IsActive),
		})
	}
	p.render([]string{"ID", "NAME", "CATEGORY", "PRICE", "STOCK", "STATUS"}, rows)
}

func (p *Printer) Product(prod *models.Product) {
	fmt.Fprintln(p.w, p.title(prod.Name))
	fmt.Fprintf(p.w, "ID:          %s\n", prod.ID)
	fmt.Fprintf(p.w, "Category:    %s\n", prod.Category)
	if prod.Brand != "" {
		fmt.Fprintf(p.w, "Brand:       %s\n", prod.Brand)
	}
	fmt.Fprintf(p.w, "Price:       %s\n", catalog.DisplayPrice(prod))
	fmt.Fprintf(p.w, "Stock:       %s\n", p.stockBadge(prod))
	fmt.Fprintf(p.w, "Status:      %s\n", p.activeBadge(prod.IsActive))
	if prod.Image != "" {
		fmt.Fprintf(p.w, "Image:       %s\n", prod.Image)
	}
	if prod.Description != "" {
		fmt.Fprintf(p.w, "\n%s\n", prod.Description)
	}

	if len(prod.Variants) == 0 {
		return
	}
	fmt.Fprintln(p.w)
	rows := make([][]string, 0, len(prod.Variants))
	for _, v := range prod.Variants {
		active := v.IsActive == nil || *v.IsActive
		rows = append(rows, []string{v.Name, v.Price.StringFixed(2), strconv.Itoa(v.Stock), v.SKU, p.activeBadge(active)})
	}
	p.render([]string{"OPTION", "PRICE", "STOCK", "SKU", "STATUS"}, rows)
}

func (p *Printer) Orders(orders []models.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(p.w, "No orders found.")
		return
	}
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{
			o.ID,
			o.OrderNumber,
			o.Customer.Name,
			o.Customer.Email,
			money(o.Currency, o.TotalAmount.StringFixed(2)),
			p.StatusBadge(o.Status),
			formatTime(o),
		})
	}
	p.render([]string{"ID", "ORDER", "CUSTOMER", "EMAIL", "TOTAL", "STATUS", "CREATED"}, rows)
}

func (p *Printer) Order(o *models.Order) {
	fmt.Fprintln(p.w, p.title("Order "+o.OrderNumber))
	fmt.Fprintf(p.w, "ID:          %s\n", o.ID)
	fmt.Fprintf(p.w, "Status:      %s\n", p.StatusBadge(o.Status))
	fmt.Fprintf(p.w, "Created:     %s\n", formatTime(*o))
	if o.PaymentReference != "" {
		fmt.Fprintf(p.w, "Payment ref: %s\n", o.PaymentReference)
	}

	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.title("Customer"))
	fmt.Fprintf(p.w, "Name:        %s\n", o.Customer.Name)
	fmt.Fprintf(p.w, "Email:       %s\n", o.Customer.Email)
	fmt.Fprintf(p.w, "Phone:       %s\n", o.Customer.Phone)

	if m := o.Metadata; m != nil {
		fmt.Fprintln(p.w)
		fmt.Fprintln(p.w, p.title("Delivery"))
		printIf(p.w, "Method:      ", m.DeliveryMethod)
		printIf(p.w, "Address:     ", m.DeliveryAddress)
		printIf(p.w, "Country:     ", m.Country)
		printIf(p.w, "Notes:       ", m.SpecialInstructions)
	}

	fmt.Fprintln(p.w)
	rows := make([][]string, 0, len(o.Items))
	for _, item := range o.Items {
		rows = append(rows, []string{
			item.Name,
			strconv.Itoa(item.Quantity),
			money(o.Currency, item.Price.StringFixed(2)),
			money(o.Currency, item.Subtotal().StringFixed(2)),
		})
	}
	p.render([]string{"ITEM", "QTY", "PRICE", "SUBTOTAL"}, rows)
	fmt.Fprintf(p.w, "Total:       %s\n", money(o.Currency, o.TotalAmount.StringFixed(2)))
}

func printIf(w io.Writer, label, value string) {
	if value != "" {
		fmt.Fprintf(w, "%s%s\n", label, value)
	}
}

func money(currency, amount string) string {
	return strings.TrimSpace(currency + " " + amount)
}

func formatTime(o models.Order) string {
	if o.CreatedAt.IsZero() {
		return "-"
	}
	return o.CreatedAt.Local().Format("2006-01-02 15:04")
}
