package tui

import (
	"fmt"
	"strings"

	"github.com/bookhavenhq/bookhaven/internal/checkout"
	"github.com/bookhavenhq/bookhaven/internal/session"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func newCheckoutInputs(user *session.User) []textinput.Model {
	name := textinput.New()
	name.Placeholder = "Jane Doe"
	name.CharLimit = 128

	email := textinput.New()
	email.Placeholder = "jane@example.com"
	email.CharLimit = 128

	// Prefill contact fields from the signed-in identity.
	if user != nil {
		name.SetValue(user.Name)
		email.SetValue(user.Email)
	}

	address := textinput.New()
	address.Placeholder = "123 Book St"
	address.CharLimit = 256

	card := textinput.New()
	card.Placeholder = "0000 0000 0000 0000"
	card.CharLimit = 32

	return []textinput.Model{name, email, address, card}
}

func (m *Model) focusCheckout() tea.Cmd {
	for i := range m.checkoutInputs {
		if i == m.checkoutFocus {
			continue
		}
		m.checkoutInputs[i].Blur()
	}
	return m.checkoutInputs[m.checkoutFocus].Focus()
}

func (m Model) updateCheckout(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.placedOrder != nil {
		// Confirmation view: only an early return home is possible, which
		// cancels the pending reset and clears the cart right away.
		switch msg.String() {
		case "enter", "esc":
			m.fail(m.carts.Clear(m.ctx))
			m.placedOrder = nil
			m.navigate(PageHome)
			return m, nil
		case "q":
			return m.quit()
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.navigate(PageHome)
		return m, nil

	case tea.KeyTab, tea.KeyDown:
		m.checkoutFocus = (m.checkoutFocus + 1) % len(m.checkoutInputs)
		return m, m.focusCheckout()

	case tea.KeyShiftTab, tea.KeyUp:
		m.checkoutFocus = (m.checkoutFocus - 1 + len(m.checkoutInputs)) % len(m.checkoutInputs)
		return m, m.focusCheckout()

	case tea.KeyEnter:
		return m.submitCheckout()
	}

	var cmd tea.Cmd
	m.checkoutInputs[m.checkoutFocus], cmd = m.checkoutInputs[m.checkoutFocus].Update(msg)
	return m, cmd
}

func (m Model) submitCheckout() (tea.Model, tea.Cmd) {
	form := checkout.Form{
		Name:    strings.TrimSpace(m.checkoutInputs[0].Value()),
		Email:   strings.TrimSpace(m.checkoutInputs[1].Value()),
		Address: strings.TrimSpace(m.checkoutInputs[2].Value()),
		Card:    strings.TrimSpace(m.checkoutInputs[3].Value()),
	}

	order, err := m.orders.PlaceOrder(m.ctx, form)
	if err != nil {
		m.fail(err)
		return m, nil
	}

	m.placedOrder = order
	m.say("Success", "Your order has been placed.")
	m.resetTimer = checkout.NewResetTimer(m.resetDelay)
	return m, waitForReset(m.resetTimer)
}

func (m Model) viewCheckout() string {
	var b strings.Builder

	if m.placedOrder != nil {
		b.WriteString(m.styles.Success.Render("Order Confirmed!"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Text.Render("Thank you for shopping with BookHaven."))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("Order " + m.placedOrder.ID.String()))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Help.Render("enter return home"))
		return m.styles.Box.Render(b.String())
	}

	b.WriteString(m.styles.Title.Render("Checkout"))
	b.WriteString("\n")

	labels := []string{"Full Name", "Email", "Shipping Address", "Card Number (Mock)"}
	for i, input := range m.checkoutInputs {
		label := labels[i]
		if i == m.checkoutFocus {
			b.WriteString(m.styles.Accent.Render(label))
		} else {
			b.WriteString(m.styles.Muted.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("Order Summary"))
	b.WriteString("\n")
	for _, item := range m.carts.Items() {
		b.WriteString(m.styles.Text.Render(
			fmt.Sprintf("%dx %s  $%s", item.Quantity, item.Title, item.Subtotal().StringFixed(2))))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Accent.Render(fmt.Sprintf("Pay $%s", m.carts.Total().StringFixed(2))))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render("enter place order • tab next field • esc back to store"))
	return m.styles.Box.Render(b.String())
}
