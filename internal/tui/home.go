package tui

import (
	"fmt"
	"strings"

	"github.com/bookhavenhq/bookhaven/internal/catalog"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) visibleBooks() []catalog.Book {
	return catalog.Filter(catalog.Books(), m.categories[m.categoryIdx], m.search.Value())
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.Type {
		case tea.KeyEsc:
			m.searching = false
			m.search.Blur()
			return m, nil
		case tea.KeyEnter:
			m.searching = false
			m.search.Blur()
			m.bookIdx = 0
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.bookIdx = 0
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m.quit()

	case "/":
		m.searching = true
		return m, m.search.Focus()

	case "t":
		dark, err := m.themes.Toggle(m.ctx)
		m.fail(err)
		m.styles = ThemeFor(dark)
		return m, nil

	case "c":
		m.cartOpen = true
		m.cartIdx = 0
		return m, nil

	case "a":
		if m.sessions.SignedIn() {
			return m, nil
		}
		m.authSignup = false
		m.authInputs = newAuthInputs(false)
		m.authFocus = 0
		m.navigate(PageAuth)
		return m, m.focusAuth()

	case "o":
		if m.sessions.SignedIn() {
			if err := m.sessions.Logout(m.ctx); err != nil {
				m.fail(err)
			} else {
				m.say("Signed Out", "See you next time.")
			}
		}
		return m, nil

	case "tab":
		m.categoryIdx = (m.categoryIdx + 1) % len(m.categories)
		m.bookIdx = 0
		return m, nil

	case "shift+tab":
		m.categoryIdx = (m.categoryIdx - 1 + len(m.categories)) % len(m.categories)
		m.bookIdx = 0
		return m, nil

	case "up", "k":
		if m.bookIdx > 0 {
			m.bookIdx--
		}
		return m, nil

	case "down", "j":
		if m.bookIdx < len(m.visibleBooks())-1 {
			m.bookIdx++
		}
		return m, nil

	case "enter":
		visible := m.visibleBooks()
		if len(visible) == 0 {
			return m, nil
		}
		// Adding to the cart requires a session; the redirect to the auth
		// view lives here, not in the cart store.
		if !m.sessions.SignedIn() {
			m.authSignup = false
			m.authInputs = newAuthInputs(false)
			m.authFocus = 0
			m.navigate(PageAuth)
			m.fail(errUnauthorized())
			return m, m.focusAuth()
		}
		book := visible[m.bookIdx]
		if err := m.carts.Add(m.ctx, book); err != nil {
			m.fail(err)
			return m, nil
		}
		m.cartOpen = true
		m.cartIdx = 0
		m.say("Added to Cart", book.Title)
		return m, nil
	}

	return m, nil
}

func (m Model) viewHome() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Curated Books for Curious Minds"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("A minimal bookstore designed for simplicity."))
	b.WriteString("\n\n")

	search := m.search.View()
	if m.searching {
		search = m.styles.Accent.Render("Search: ") + search
	} else {
		search = m.styles.Muted.Render("Search: ") + search
	}
	b.WriteString(search)
	b.WriteString("\n\n")

	chips := make([]string, 0, len(m.categories))
	for i, category := range m.categories {
		if i == m.categoryIdx {
			chips = append(chips, m.styles.ChipOn.Render(category))
		} else {
			chips = append(chips, m.styles.Chip.Render(category))
		}
	}
	b.WriteString(strings.Join(chips, " "))
	b.WriteString("\n\n")

	visible := m.visibleBooks()
	if len(visible) == 0 {
		b.WriteString(m.styles.Muted.Render("No books found."))
	}
	for i, book := range visible {
		line := fmt.Sprintf("%s by %s  %s  %s %.1f",
			book.Title, book.Author,
			"$"+book.Price.StringFixed(2),
			book.Category, book.Rating)
		if i == m.bookIdx {
			b.WriteString(m.styles.Selected.Render("> " + line))
			b.WriteString("\n")
			b.WriteString(m.styles.Muted.Render("    " + book.Description))
		} else {
			b.WriteString(m.styles.Text.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("enter add • / search • tab category • c cart • t theme • a sign in • o sign out • q quit"))
	return b.String()
}
