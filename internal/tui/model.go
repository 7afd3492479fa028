// Package tui is the terminal front end. It offers the same six screens as
// the web front end, drives them with navigation.Transition and writes
// downloads into an output directory.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/navigation"
	"github.com/mrlokans/library-manager/internal/services"
	"github.com/mrlokans/library-manager/internal/validation"
)

// Library is the part of the library service the terminal screens use.
type Library interface {
	Register(ctx context.Context, in validation.Registration) (*entities.User, error)
	Login(ctx context.Context, email, password string) (*entities.User, error)
	AddBook(ctx context.Context, ownerID uint, in validation.BookInput) (*entities.Book, error)
	ListBooks(ctx context.Context, ownerID uint) ([]entities.Book, error)
}

// Actions handled on the current screen without a transition.
const (
	actionSubmit      = "submit"
	actionDownloadCSV = "download_csv"
	actionDownloadPDF = "download_pdf"
	actionQuit        = "quit"
)

type field struct {
	label  string
	secret bool
}

var pageFields = map[navigation.Page][]field{
	navigation.PageRegister: {{label: "Username"}, {label: "Email"}, {label: "Password", secret: true}},
	navigation.PageLogin:    {{label: "Email"}, {label: "Password", secret: true}},
	navigation.PageAddBook:  {{label: "Title"}, {label: "Author"}, {label: "Genre"}},
}

type controlKind int

const (
	controlInput controlKind = iota
	controlStatus
	controlButton
)

// control is one focusable line of a screen.
type control struct {
	kind   controlKind
	index  int
	label  string
	action string
}

type Model struct {
	ctx       context.Context
	library   Library
	outputDir string
	logger    *zap.Logger

	state  navigation.State
	inputs []textinput.Model
	status int
	focus  int
	books  []entities.Book

	flash    string
	err      string
	busy     bool
	quitting bool
}

func New(ctx context.Context, library Library, outputDir string, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := Model{
		ctx:       ctx,
		library:   library,
		outputDir: outputDir,
		logger:    logger,
	}
	m.enterPage(navigation.Initial())
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case registeredMsg:
		m.busy = false
		m.apply(navigation.Event{Action: navigation.ActionSubmitValid})
		m.flash = navigation.MsgRegistered
		return m, nil

	case loggedInMsg:
		m.busy = false
		m.apply(navigation.Event{
			Action: navigation.ActionSubmitSuccess,
			User:   &navigation.Identity{UserID: msg.user.ID, Username: msg.user.Username},
		})
		m.flash = navigation.MsgLoggedIn
		return m, nil

	case bookAddedMsg:
		// Adding a book keeps the user on a fresh form
		m.busy = false
		m.enterPage(m.state)
		m.flash = navigation.MsgBookAdded
		return m, nil

	case booksLoadedMsg:
		m.busy = false
		m.books = msg.books
		m.focus = 0
		return m, nil

	case exportedMsg:
		m.busy = false
		m.flash = "Saved " + msg.path
		return m, nil

	case errMsg:
		m.busy = false
		m.err = m.describe(msg)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "tab", "down":
		m.moveFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.moveFocus(-1)
		return m, nil
	}

	if m.busy {
		return m, nil
	}
	if msg.Type == tea.KeyEsc && m.hasAction(string(navigation.ActionBack)) {
		return m.act(string(navigation.ActionBack))
	}

	controls := m.controls()
	if len(controls) == 0 {
		return m, nil
	}
	c := controls[m.focus]

	switch c.kind {
	case controlInput:
		if msg.Type == tea.KeyEnter {
			m.moveFocus(1)
			return m, nil
		}
		var cmd tea.Cmd
		m.inputs[c.index], cmd = m.inputs[c.index].Update(msg)
		return m, cmd

	case controlStatus:
		switch msg.String() {
		case "left", "h":
			m.cycleStatus(-1)
		case "right", "l", " ":
			m.cycleStatus(1)
		case "enter":
			m.moveFocus(1)
		}
		return m, nil

	case controlButton:
		if msg.Type == tea.KeyEnter {
			return m.act(c.action)
		}
	}

	return m, nil
}

// act runs a button's action: effects are started as commands, everything
// else goes through the state machine.
func (m Model) act(action string) (tea.Model, tea.Cmd) {
	m.flash, m.err = "", ""

	switch action {
	case actionQuit:
		m.quitting = true
		return m, tea.Quit
	case actionSubmit:
		m.busy = true
		return m, m.submit()
	case actionDownloadCSV, actionDownloadPDF:
		m.busy = true
		return m, exportBooks(m.ctx, m.library, m.state.User.UserID, m.state.User.Username, m.outputDir, action)
	}

	if !m.apply(navigation.Event{Action: navigation.Action(action)}) {
		return m, nil
	}
	if m.state.Page == navigation.PageViewBooks {
		m.busy = true
		return m, loadBooks(m.ctx, m.library, m.state.User.UserID)
	}
	return m, nil
}

// apply moves to the next screen, reporting false when the current screen
// does not accept the event.
func (m *Model) apply(event navigation.Event) bool {
	next, err := navigation.Transition(m.state, event)
	if err != nil {
		m.logger.Debug("ignoring action",
			zap.String("page", string(m.state.Page)),
			zap.String("action", string(event.Action)))
		return false
	}
	m.enterPage(next)
	return true
}

func (m Model) submit() tea.Cmd {
	switch m.state.Page {
	case navigation.PageRegister:
		return register(m.ctx, m.library, validation.Registration{
			Username: m.value(0),
			Email:    m.value(1),
			Password: m.value(2),
		})
	case navigation.PageLogin:
		return login(m.ctx, m.library, m.value(0), m.value(1))
	case navigation.PageAddBook:
		return addBook(m.ctx, m.library, m.state.User.UserID, validation.BookInput{
			Title:  m.value(0),
			Author: m.value(1),
			Genre:  m.value(2),
			Status: entities.BookStatuses[m.status],
		})
	}
	return nil
}

// describe turns a failed operation into the message shown on screen.
func (m Model) describe(msg errMsg) string {
	switch {
	case errors.Is(msg.err, validation.ErrInvalidInput):
		return navigation.MsgInvalidInput
	case errors.Is(msg.err, services.ErrInvalidCredentials):
		return navigation.MsgInvalidCredentials
	case errors.Is(msg.err, validation.ErrMissingFields):
		return navigation.MsgMissingFields
	case errors.Is(msg.err, errEmptyLibrary):
		return navigation.MsgNoBooks
	}
	m.logger.Error("operation failed", zap.String("op", msg.op), zap.Error(msg.err))
	return "Could not " + msg.op + ", see the log for details"
}

// enterPage shows the state's screen with empty inputs.
func (m *Model) enterPage(state navigation.State) {
	m.state = state
	m.status = 0
	m.focus = 0
	if state.Page != navigation.PageViewBooks {
		m.books = nil
	}

	fields := pageFields[state.Page]
	m.inputs = make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 200
		ti.Width = 40
		if f.secret {
			ti.EchoMode = textinput.EchoPassword
		}
		m.inputs[i] = ti
	}
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
}

func (m Model) controls() []control {
	var controls []control
	for i, f := range pageFields[m.state.Page] {
		controls = append(controls, control{kind: controlInput, index: i, label: f.label})
	}
	if m.state.Page == navigation.PageAddBook {
		controls = append(controls, control{kind: controlStatus, label: "Status"})
	}
	for _, b := range m.buttons() {
		controls = append(controls, control{kind: controlButton, label: b.label, action: b.action})
	}
	return controls
}

type button struct {
	label  string
	action string
}

func (m Model) buttons() []button {
	switch m.state.Page {
	case navigation.PageHome:
		return []button{
			{"Register", string(navigation.ActionRegisterClicked)},
			{"Login", string(navigation.ActionLoginClicked)},
			{"Quit", actionQuit},
		}
	case navigation.PageRegister, navigation.PageLogin, navigation.PageAddBook:
		return []button{
			{"Submit", actionSubmit},
			{"Back", string(navigation.ActionBack)},
		}
	case navigation.PageMenu:
		return []button{
			{"Add Book", string(navigation.ActionAddBookClicked)},
			{"View Books", string(navigation.ActionViewBooksClicked)},
			{"Logout", string(navigation.ActionLogout)},
		}
	case navigation.PageViewBooks:
		var buttons []button
		if len(m.books) > 0 {
			buttons = append(buttons,
				button{"Download CSV", actionDownloadCSV},
				button{"Download PDF", actionDownloadPDF})
		}
		return append(buttons, button{"Back", string(navigation.ActionBack)})
	}
	return nil
}

func (m Model) hasAction(action string) bool {
	for _, b := range m.buttons() {
		if b.action == action {
			return true
		}
	}
	return false
}

// moveFocus steps through the screen's controls, wrapping at both ends.
func (m *Model) moveFocus(delta int) {
	controls := m.controls()
	if len(controls) == 0 {
		return
	}
	if c := controls[m.focus]; c.kind == controlInput {
		m.inputs[c.index].Blur()
	}
	m.focus = (m.focus + delta + len(controls)) % len(controls)
	if c := controls[m.focus]; c.kind == controlInput {
		m.inputs[c.index].Focus()
	}
}

func (m *Model) cycleStatus(delta int) {
	n := len(entities.BookStatuses)
	m.status = (m.status + delta + n) % n
}

func (m Model) value(i int) string {
	if i >= len(m.inputs) {
		return ""
	}
	return m.inputs[i].Value()
}
