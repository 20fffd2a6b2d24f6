package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lucysperfumery/admin/internal/models"
	"github.com/lucysperfumery/admin/internal/orders"
	"go.uber.org/zap"
)

func runOrders(a *app, args []string) error {
	if len(args) < 1 {
		return ordersUsage()
	}
	if err := a.auth.Require(); err != nil {
		return err
	}
	switch args[0] {
	case "list":
		return runOrdersList(a, args[1:])
	case "get":
		return runOrdersGet(a, args[1:])
	case "status":
		return runOrdersStatus(a, args[1:])
	default:
		return ordersUsage()
	}
}

func ordersUsage() error {
	fmt.Fprintf(os.Stderr, `Usage: admin orders <subcommand> [options]

Subcommands:
  list     List orders, newest first (-q filters by customer or order id)
  get      Show one order with its items
  status   Set an order's status: pending, completed or failed
`)
	return fmt.Errorf("orders subcommand is required")
}

func runOrdersList(a *app, args []string) error {
	fs := flag.NewFlagSet("orders list", flag.ContinueOnError)
	query := fs.String("q", "", "Only show orders matching customer name, email or order id")
	status := fs.String("status", "", "Only show orders with this status")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: admin orders list [-q <text>] [-status <status>]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	var want models.OrderStatus
	if *status != "" {
		s, err := models.ParseOrderStatus(*status)
		if err != nil {
			return err
		}
		want = s
	}

	list, err := a.orders.List(a.ctx)
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}
	orders.SortNewestFirst(list)
	list = orders.Filter(list, *query)

	if want != "" {
		matched := list[:0]
		for _, o := range list {
			if o.Status == want {
				matched = append(matched, o)
			}
		}
		list = matched
	}

	a.view.Orders(list)
	return nil
}

func runOrdersGet(a *app, args []string) error {
	fs := flag.NewFlagSet("orders get", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: admin orders get <id>\n")
	}
	id, err := parseWithID(fs, args)
	if err != nil {
		return err
	}

	order, err := a.orders.Get(a.ctx, id)
	if err != nil {
		return fmt.Errorf("load order: %w", err)
	}
	a.view.Order(order)
	return nil
}

func runOrdersStatus(a *app, args []string) error {
	fs := flag.NewFlagSet("orders status", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: admin orders status <id> <pending|completed|failed>\n")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("orders status requires an id and a status")
	}
	id := fs.Arg(0)

	status, err := models.ParseOrderStatus(fs.Arg(1))
	if err != nil {
		return err
	}

	updated, err := a.orders.SetStatus(a.ctx, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	a.log.Info("order status updated", zap.String("order_id", id), zap.String("status", string(status)))

	// Reload; fall back to the PATCH response if that fails.
	order, err := a.orders.Get(a.ctx, id)
	if err != nil {
		a.log.Warn("reload order after status change", zap.String("order_id", id), zap.Error(err))
		order = updated
	}
	fmt.Fprintf(a.out, "Order %s is now %s\n\n", id, status)
	a.view.Order(order)
	return nil
}
