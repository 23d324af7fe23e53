package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateCart(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.carts.Items()

	switch msg.String() {
	case "q":
		return m.quit()

	case "esc", "c":
		m.cartOpen = false
		return m, nil

	case "up", "k":
		if m.cartIdx > 0 {
			m.cartIdx--
		}
		return m, nil

	case "down", "j":
		if m.cartIdx < len(items)-1 {
			m.cartIdx++
		}
		return m, nil

	case "+", "=":
		if m.cartIdx < len(items) {
			item := items[m.cartIdx]
			m.fail(m.carts.SetQuantity(m.ctx, item.ID, item.Quantity+1))
		}
		return m, nil

	case "-":
		if m.cartIdx < len(items) {
			item := items[m.cartIdx]
			m.fail(m.carts.SetQuantity(m.ctx, item.ID, item.Quantity-1))
			m.clampCartIdx()
		}
		return m, nil

	case "x", "delete":
		if m.cartIdx < len(items) {
			m.fail(m.carts.Remove(m.ctx, items[m.cartIdx].ID))
			m.clampCartIdx()
		}
		return m, nil

	case "enter":
		if len(items) == 0 {
			return m, nil
		}
		m.cartOpen = false
		m.checkoutInputs = newCheckoutInputs(m.sessions.Current())
		m.checkoutFocus = 0
		m.navigate(PageCheckout)
		return m, m.focusCheckout()
	}

	return m, nil
}

func (m *Model) clampCartIdx() {
	if count := len(m.carts.Items()); m.cartIdx >= count && count > 0 {
		m.cartIdx = count - 1
	} else if count == 0 {
		m.cartIdx = 0
	}
}

func (m Model) viewCart() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Your Cart"))
	b.WriteString("\n")

	items := m.carts.Items()
	if len(items) == 0 {
		b.WriteString(m.styles.Muted.Render("Your cart is empty."))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Help.Render("esc close • q quit"))
		return m.styles.Box.Render(b.String())
	}

	for i, item := range items {
		line := fmt.Sprintf("%dx %s  $%s", item.Quantity, item.Title, item.Subtotal().StringFixed(2))
		if i == m.cartIdx {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(m.styles.Text.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Accent.Render(fmt.Sprintf("Total: $%s", m.carts.Total().StringFixed(2))))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render("enter checkout • +/- quantity • x remove • esc close"))
	return m.styles.Box.Render(b.String())
}
