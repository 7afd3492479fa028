package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var alice = &Identity{UserID: 1, Username: "alice"}

var allActions = []Action{
	ActionRegisterClicked,
	ActionLoginClicked,
	ActionSubmitValid,
	ActionSubmitSuccess,
	ActionBack,
	ActionAddBookClicked,
	ActionViewBooksClicked,
	ActionLogout,
}

func TestInitial(t *testing.T) {
	state := Initial()

	assert.Equal(t, PageHome, state.Page)
	assert.Nil(t, state.User)
	assert.False(t, state.LoggedIn())
}

func TestTransition_Table(t *testing.T) {
	tests := []struct {
		from   Page
		action Action
		to     Page
	}{
		{PageHome, ActionRegisterClicked, PageRegister},
		{PageHome, ActionLoginClicked, PageLogin},
		{PageRegister, ActionSubmitValid, PageLogin},
		{PageRegister, ActionBack, PageHome},
		{PageLogin, ActionSubmitSuccess, PageMenu},
		{PageLogin, ActionBack, PageHome},
		{PageMenu, ActionAddBookClicked, PageAddBook},
		{PageMenu, ActionViewBooksClicked, PageViewBooks},
		{PageMenu, ActionLogout, PageHome},
		{PageAddBook, ActionBack, PageMenu},
		{PageViewBooks, ActionBack, PageMenu},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.action), func(t *testing.T) {
			state := State{Page: tt.from}
			if tt.from.RequiresUser() {
				state.User = alice
			}

			next, err := Transition(state, Event{Action: tt.action, User: alice})

			require.NoError(t, err)
			assert.Equal(t, tt.to, next.Page)
		})
	}
}

func TestTransition_UndefinedPairsLeaveStateUnchanged(t *testing.T) {
	defined := 0
	for _, page := range Pages {
		for _, action := range allActions {
			state := State{Page: page, User: alice}
			if _, ok := transitions[edge{page, action}]; ok {
				defined++
				continue
			}

			next, err := Transition(state, Event{Action: action, User: alice})

			assert.ErrorIs(t, err, ErrInvalidTransition, "%s on %s", action, page)
			assert.Equal(t, state, next, "%s on %s", action, page)
		}
	}
	assert.Equal(t, 11, defined)
}

func TestTransition_LoginSetsUser(t *testing.T) {
	next, err := Transition(State{Page: PageLogin}, Event{Action: ActionSubmitSuccess, User: alice})

	require.NoError(t, err)
	require.NotNil(t, next.User)
	assert.Equal(t, *alice, *next.User)
	assert.NotSame(t, alice, next.User)
}

func TestTransition_LoginWithoutUserIsInvalid(t *testing.T) {
	state := State{Page: PageLogin}

	next, err := Transition(state, Event{Action: ActionSubmitSuccess})

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, state, next)
}

func TestTransition_LogoutClearsUser(t *testing.T) {
	next, err := Transition(State{Page: PageMenu, User: alice}, Event{Action: ActionLogout})

	require.NoError(t, err)
	assert.Equal(t, Initial(), next)
}

func TestTransition_KeepsUserWhileNavigating(t *testing.T) {
	state := State{Page: PageMenu, User: alice}

	state, err := Transition(state, Event{Action: ActionViewBooksClicked})
	require.NoError(t, err)
	assert.Equal(t, alice, state.User)

	state, err = Transition(state, Event{Action: ActionBack})
	require.NoError(t, err)
	assert.Equal(t, PageMenu, state.Page)
	assert.Equal(t, alice, state.User)
}

func TestTransition_FullJourney(t *testing.T) {
	steps := []struct {
		event Event
		page  Page
	}{
		{Event{Action: ActionRegisterClicked}, PageRegister},
		{Event{Action: ActionSubmitValid}, PageLogin},
		{Event{Action: ActionSubmitSuccess, User: alice}, PageMenu},
		{Event{Action: ActionAddBookClicked}, PageAddBook},
		{Event{Action: ActionBack}, PageMenu},
		{Event{Action: ActionViewBooksClicked}, PageViewBooks},
		{Event{Action: ActionBack}, PageMenu},
		{Event{Action: ActionLogout}, PageHome},
	}

	state := Initial()
	for _, step := range steps {
		var err error
		state, err = Transition(state, step.event)
		require.NoError(t, err, step.event.Action)
		assert.Equal(t, step.page, state.Page)
	}
	assert.Nil(t, state.User)
}

func TestState_Normalize(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  State
	}{
		{"home stays", State{Page: PageHome}, State{Page: PageHome}},
		{"login stays", State{Page: PageLogin}, State{Page: PageLogin}},
		{"menu with user stays", State{Page: PageMenu, User: alice}, State{Page: PageMenu, User: alice}},
		{"menu without user resets", State{Page: PageMenu}, Initial()},
		{"add book without user resets", State{Page: PageAddBook}, Initial()},
		{"view books without user resets", State{Page: PageViewBooks}, Initial()},
		{"unknown page resets", State{Page: "settings", User: alice}, Initial()},
		{"empty page resets", State{}, Initial()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.Normalize())
		})
	}
}
