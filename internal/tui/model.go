package tui

import (
	"context"
	"time"

	"github.com/bookhavenhq/bookhaven/internal/cart"
	"github.com/bookhavenhq/bookhaven/internal/catalog"
	"github.com/bookhavenhq/bookhaven/internal/checkout"
	"github.com/bookhavenhq/bookhaven/internal/session"
	"github.com/bookhavenhq/bookhaven/internal/theme"
	pkgerrors "github.com/bookhavenhq/bookhaven/pkg/errors"
	"github.com/bookhavenhq/bookhaven/pkg/logger"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Page selects which top-level view renders. There is no history stack.
type Page int

const (
	PageHome Page = iota
	PageAuth
	PageCheckout
)

func (p Page) String() string {
	switch p {
	case PageAuth:
		return "auth"
	case PageCheckout:
		return "checkout"
	default:
		return "home"
	}
}

type toast struct {
	title   string
	message string
	danger  bool
}

// resetDoneMsg fires when the post-confirmation delay elapses.
type resetDoneMsg struct{}

// Model is the root bubbletea model. All store mutations happen inside
// Update, so one message runs to completion before the next is processed.
type Model struct {
	ctx  context.Context
	logg *logger.Logger

	carts    *cart.Store
	sessions *session.Store
	themes   *theme.Store
	orders   checkout.Service

	resetDelay time.Duration
	resetTimer *checkout.ResetTimer

	page   Page
	styles Theme
	width  int
	height int
	toast  *toast

	// home
	search      textinput.Model
	searching   bool
	categories  []string
	categoryIdx int
	bookIdx     int

	// cart drawer
	cartOpen bool
	cartIdx  int

	// auth
	authSignup bool
	authInputs []textinput.Model
	authFocus  int

	// checkout
	checkoutInputs []textinput.Model
	checkoutFocus  int
	placedOrder    *checkout.Order
}

// Params groups everything the view layer reads or invokes.
type Params struct {
	Logger     *logger.Logger
	Cart       *cart.Store
	Session    *session.Store
	Theme      *theme.Store
	Checkout   checkout.Service
	ResetDelay time.Duration
}

// NewModel builds the root model from rehydrated stores.
func NewModel(params Params) (Model, error) {
	if params.Cart == nil || params.Session == nil || params.Theme == nil || params.Checkout == nil {
		return Model{}, pkgerrors.New(pkgerrors.CodeValidation, "all stores are required")
	}

	search := textinput.New()
	search.Placeholder = "Search titles or authors..."
	search.CharLimit = 64

	m := Model{
		ctx:        context.Background(),
		logg:       params.Logger,
		carts:      params.Cart,
		sessions:   params.Session,
		themes:     params.Theme,
		orders:     params.Checkout,
		resetDelay: params.ResetDelay,
		page:       PageHome,
		styles:     ThemeFor(params.Theme.Dark()),
		search:     search,
		categories: catalog.Categories(),
	}
	m.authInputs = newAuthInputs(false)
	m.checkoutInputs = newCheckoutInputs(params.Session.Current())
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case resetDoneMsg:
		// The confirmation view is still alive; clear the cart and go home.
		m.resetTimer = nil
		m.fail(m.carts.Clear(m.ctx))
		m.placedOrder = nil
		m.navigate(PageHome)
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	m.toast = nil

	if m.cartOpen {
		return m.updateCart(msg)
	}

	switch m.page {
	case PageAuth:
		return m.updateAuth(msg)
	case PageCheckout:
		return m.updateCheckout(msg)
	default:
		return m.updateHome(msg)
	}
}

func (m Model) View() string {
	body := ""
	switch {
	case m.cartOpen:
		body = m.viewCart()
	case m.page == PageAuth:
		body = m.viewAuth()
	case m.page == PageCheckout:
		body = m.viewCheckout()
	default:
		body = m.viewHome()
	}
	return m.viewHeader() + "\n" + body + m.viewToast()
}

// quit tears the program down, cancelling any pending reset so nothing
// mutates state after the views are gone.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.resetTimer != nil {
		m.resetTimer.Cancel()
		m.resetTimer = nil
	}
	return m, tea.Quit
}

func (m *Model) navigate(page Page) {
	if m.page == PageCheckout && page != PageCheckout && m.resetTimer != nil {
		// Leaving the checkout view cancels the pending reset.
		m.resetTimer.Cancel()
		m.resetTimer = nil
		m.placedOrder = nil
	}
	m.page = page
	if m.logg != nil {
		m.logg.Debug(m.logg.WithPage(m.ctx, page.String()), "page changed")
	}
}

// fail routes a store error into the toast area. Nil errors are ignored.
func (m *Model) fail(err error) {
	if err == nil {
		return
	}
	code := pkgerrors.CodeInternal
	if typed := pkgerrors.As(err); typed != nil {
		code = typed.Code()
	}
	meta := pkgerrors.MetadataFor(code)
	m.toast = &toast{title: meta.ToastTitle, message: meta.ToastMessage, danger: true}
}

func (m *Model) say(title, message string) {
	m.toast = &toast{title: title, message: message}
}

func (m Model) viewToast() string {
	if m.toast == nil {
		return ""
	}
	style := m.styles.Success
	if m.toast.danger {
		style = m.styles.Danger
	}
	return "\n" + style.Render(m.toast.title) + " " + m.styles.Muted.Render(m.toast.message)
}

func waitForReset(timer *checkout.ResetTimer) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-timer.Done(); ok {
			return resetDoneMsg{}
		}
		return nil
	}
}
