package sheetpos

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filtering evaluates a boolean expression per entity over a flat field
// environment, e.g. `price > 100 && volume != ""` for products or
// `total >= 500 && payment == "card"` for orders.

// FilterProducts returns the products for which the expression is true.
// Fields: name, volume, price (0 when absent), hasPrice, id.
func FilterProducts(list []Product, expression string) ([]Product, error) {
	prog, err := compileFilter(expression)
	if err != nil {
		return nil, err
	}
	var out []Product
	for _, p := range list {
		price := 0.0
		if p.Price != nil {
			price = *p.Price
		}
		keep, err := runFilter(prog, map[string]any{
			"id":       p.ID,
			"name":     p.Name,
			"volume":   p.Volume,
			"price":    price,
			"hasPrice": p.Price != nil,
		})
		if err != nil {
			return nil, err
		}
		if keep {
			out = append(out, p)
		}
	}
	return out, nil
}

// FilterOrders returns the orders for which the expression is true.
// Fields: id, total, payment, employee, timestamp, items (line count),
// units (total quantity).
func FilterOrders(list []Order, expression string) ([]Order, error) {
	prog, err := compileFilter(expression)
	if err != nil {
		return nil, err
	}
	var out []Order
	for _, o := range list {
		keep, err := runFilter(prog, map[string]any{
			"id":        o.ID,
			"total":     o.TotalPrice,
			"payment":   o.PaymentMethod,
			"employee":  o.Employee,
			"timestamp": o.Timestamp,
			"items":     len(o.Items),
			"units":     o.Quantity(),
		})
		if err != nil {
			return nil, err
		}
		if keep {
			out = append(out, o)
		}
	}
	return out, nil
}

func compileFilter(expression string) (*vm.Program, error) {
	prog, err := expr.Compile(expression, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", expression, err)
	}
	return prog, nil
}

func runFilter(prog *vm.Program, env map[string]any) (bool, error) {
	res, err := expr.Run(prog, env)
	if err != nil {
		return false, fmt.Errorf("run filter: %w", err)
	}
	keep, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("filter did not yield a boolean")
	}
	return keep, nil
}
