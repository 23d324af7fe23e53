package tui

import (
	"fmt"

	pkgerrors "github.com/bookhavenhq/bookhaven/pkg/errors"
)

func (m Model) viewHeader() string {
	brand := m.styles.Accent.Render("BookHaven")

	identity := "browsing as guest"
	if user := m.sessions.Current(); user != nil {
		identity = "signed in as " + user.Name
	}

	cartBadge := fmt.Sprintf("cart: %d ($%s)", m.carts.ItemCount(), m.carts.Total().StringFixed(2))

	mode := "light"
	if m.themes.Dark() {
		mode = "dark"
	}

	return m.styles.Header.Render(fmt.Sprintf("%s  •  %s  •  %s  •  %s theme",
		brand, identity, cartBadge, mode))
}

func errUnauthorized() error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to add books to your cart")
}
