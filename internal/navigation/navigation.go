// Package navigation holds the screen state machine shared by the web and
// terminal front ends. Transition is pure: effects such as storing a book
// happen in the caller before the event is applied.
package navigation

import (
	"errors"
	"fmt"
)

type Page string

const (
	PageHome      Page = "home"
	PageRegister  Page = "register"
	PageLogin     Page = "login"
	PageMenu      Page = "menu"
	PageAddBook   Page = "add_book"
	PageViewBooks Page = "view_books"
)

// Pages lists every screen.
var Pages = []Page{PageHome, PageRegister, PageLogin, PageMenu, PageAddBook, PageViewBooks}

// Valid reports whether p names a known screen.
func (p Page) Valid() bool {
	for _, page := range Pages {
		if p == page {
			return true
		}
	}
	return false
}

// RequiresUser reports whether the screen is only reachable when logged in.
func (p Page) RequiresUser() bool {
	switch p {
	case PageMenu, PageAddBook, PageViewBooks:
		return true
	}
	return false
}

type Action string

const (
	ActionRegisterClicked  Action = "register_clicked"
	ActionLoginClicked     Action = "login_clicked"
	ActionSubmitValid      Action = "submit_valid"
	ActionSubmitSuccess    Action = "submit_success"
	ActionBack             Action = "back"
	ActionAddBookClicked   Action = "add_book_clicked"
	ActionViewBooksClicked Action = "view_books_clicked"
	ActionLogout           Action = "logout"
)

var ErrInvalidTransition = errors.New("invalid transition")

// Identity is the logged-in user as remembered between screens.
type Identity struct {
	UserID   uint
	Username string
}

// State is the current screen and, once logged in, the user.
type State struct {
	Page Page
	User *Identity
}

// Event is a user action. User is only read by ActionSubmitSuccess.
type Event struct {
	Action Action
	User   *Identity
}

// Initial is the state of a new session.
func Initial() State {
	return State{Page: PageHome}
}

// LoggedIn reports whether a user is attached to the state.
func (s State) LoggedIn() bool {
	return s.User != nil
}

// Normalize returns the initial state when the page is unknown or requires a
// user the state does not have, for example after a session expired.
func (s State) Normalize() State {
	if !s.Page.Valid() || (s.Page.RequiresUser() && s.User == nil) {
		return Initial()
	}
	return s
}

type edge struct {
	from   Page
	action Action
}

var transitions = map[edge]Page{
	{PageHome, ActionRegisterClicked}:  PageRegister,
	{PageHome, ActionLoginClicked}:     PageLogin,
	{PageRegister, ActionSubmitValid}:  PageLogin,
	{PageRegister, ActionBack}:         PageHome,
	{PageLogin, ActionSubmitSuccess}:   PageMenu,
	{PageLogin, ActionBack}:            PageHome,
	{PageMenu, ActionAddBookClicked}:   PageAddBook,
	{PageMenu, ActionViewBooksClicked}: PageViewBooks,
	{PageMenu, ActionLogout}:           PageHome,
	{PageAddBook, ActionBack}:          PageMenu,
	{PageViewBooks, ActionBack}:        PageMenu,
}

// Transition applies the event to the state. Pairs without a defined
// transition return ErrInvalidTransition and the state unchanged.
func Transition(state State, event Event) (State, error) {
	next, ok := transitions[edge{state.Page, event.Action}]
	if !ok {
		return state, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, event.Action, state.Page)
	}

	switch event.Action {
	case ActionSubmitSuccess:
		if event.User == nil {
			return state, fmt.Errorf("%w: %s without a user", ErrInvalidTransition, event.Action)
		}
		user := *event.User
		return State{Page: next, User: &user}, nil
	case ActionLogout:
		return State{Page: next}, nil
	}

	return State{Page: next, User: state.User}, nil
}
