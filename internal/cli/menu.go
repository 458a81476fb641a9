// Package cli is the interactive menu driver over a shop session.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fairyhunter13/shopping-cart/internal/model"
	"github.com/fairyhunter13/shopping-cart/internal/obs"
	"github.com/fairyhunter13/shopping-cart/internal/shop"
)

// Menu reads choices from in and writes everything the shopper sees to out.
type Menu struct {
	sess *shop.Session
	in   *bufio.Scanner
	out  io.Writer
}

func NewMenu(sess *shop.Session, in io.Reader, out io.Writer) *Menu {
	return &Menu{sess: sess, in: bufio.NewScanner(in), out: out}
}

const menuText = `
🛍️  Online Shopping Cart Menu
1. View Products
2. Add Item to Cart
3. View Cart
4. Update Quantity in Cart
5. Remove Item from Cart
6. Checkout
7. Exit`

// Run loops until the shopper exits or input ends, then closes the session,
// which saves the catalog.
func (m *Menu) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(m.out, menuText)
		choice, ok := m.prompt("Enter choice (1-7): ")
		if !ok {
			return m.exit(ctx)
		}
		switch choice {
		case "1":
			m.showProducts()
		case "2":
			m.addItem(ctx)
		case "3":
			m.showCart()
		case "4":
			m.updateItem(ctx)
		case "5":
			m.removeItem(ctx)
		case "6":
			fmt.Fprintf(m.out, "\n💰 Checkout complete! Total amount: ₹%s\n", m.sess.Total().StringFixed(2))
		case "7":
			return m.exit(ctx)
		default:
			fmt.Fprintln(m.out, "⚠️ Invalid option. Try again.")
		}
	}
}

func (m *Menu) exit(ctx context.Context) error {
	if err := m.sess.Close(ctx); err != nil {
		fmt.Fprintln(m.out, "❌ Failed to save data.")
		return err
	}
	fmt.Fprintln(m.out, "🛑 Exiting... Data saved.")
	return nil
}

func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) promptInt(label string) (int, bool) {
	s, ok := m.prompt(label)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		fmt.Fprintln(m.out, "⚠️ Quantity must be a whole number.")
		return 0, false
	}
	return n, true
}

func (m *Menu) showProducts() {
	fmt.Fprint(m.out, "\n📦 Available Products:\n\n")
	for _, p := range m.sess.ListProducts() {
		fmt.Fprintln(m.out, p.Description)
	}
	fmt.Fprintln(m.out)
}

func (m *Menu) showCart() {
	v := m.sess.ViewCart()
	if len(v.Lines) == 0 {
		fmt.Fprint(m.out, "\n🛒 Cart is empty.\n\n")
		return
	}
	fmt.Fprint(m.out, "\n🛒 Your Shopping Cart:\n\n")
	for _, l := range v.Lines {
		fmt.Fprintf(m.out, "Item: %s, Qty: %d, Price: ₹%s, Subtotal: ₹%s\n",
			l.Name, l.Quantity, l.UnitPrice.StringFixed(2), l.Subtotal.StringFixed(2))
	}
	fmt.Fprintf(m.out, "\nTotal Amount: ₹%s\n\n", v.Total.StringFixed(2))
}

func (m *Menu) addItem(ctx context.Context) {
	id, ok := m.prompt("Enter Product ID: ")
	if !ok {
		return
	}
	qty, ok := m.promptInt("Enter Quantity: ")
	if !ok {
		return
	}
	if _, err := m.sess.AddOrIncrease(ctx, id, qty); err != nil {
		m.fail("❌ Failed to add item", err)
		return
	}
	fmt.Fprintln(m.out, "✅ Item added to cart.")
}

func (m *Menu) updateItem(ctx context.Context) {
	id, ok := m.prompt("Enter Product ID to update: ")
	if !ok {
		return
	}
	qty, ok := m.promptInt("Enter new quantity: ")
	if !ok {
		return
	}
	if _, err := m.sess.UpdateQuantity(ctx, id, qty); err != nil {
		m.fail("❌ Failed to update", err)
		return
	}
	fmt.Fprintln(m.out, "✅ Quantity updated.")
}

func (m *Menu) removeItem(ctx context.Context) {
	id, ok := m.prompt("Enter Product ID to remove: ")
	if !ok {
		return
	}
	if _, err := m.sess.RemoveItem(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotInCart) {
			fmt.Fprintln(m.out, "❌ Item not found.")
			return
		}
		m.fail("❌ Failed to remove item", err)
		return
	}
	fmt.Fprintln(m.out, "✅ Item removed.")
}

func (m *Menu) fail(msg string, err error) {
	fmt.Fprintf(m.out, "%s: %s.\n", msg, reason(err))
	obs.Logger.Debug("menu_action_failed", "session_id", m.sess.ID(), "error", err)
}

// reason turns a session error into a short shopper-facing explanation.
func reason(err error) string {
	switch {
	case errors.Is(err, model.ErrUnknownProduct):
		return "no such product"
	case errors.Is(err, model.ErrInsufficientStock):
		return "not enough stock"
	case errors.Is(err, model.ErrInvalidQuantity):
		return "invalid quantity"
	case errors.Is(err, model.ErrNotInCart):
		return "item is not in the cart"
	default:
		return "could not save cart"
	}
}
