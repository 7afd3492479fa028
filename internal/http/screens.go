package http

import (
	"encoding/base64"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/library-manager/internal/auth"
	"github.com/mrlokans/library-manager/internal/charts"
	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/navigation"
	"github.com/mrlokans/library-manager/internal/reports"
	"github.com/mrlokans/library-manager/internal/services"
	"github.com/mrlokans/library-manager/internal/validation"
)

// Form actions that stay on the current screen.
const (
	actionSubmit      = "submit"
	actionDownloadCSV = "download_csv"
	actionDownloadPDF = "download_pdf"
)

// screenData is passed to every screen template.
type screenData struct {
	Page      navigation.Page
	Flash     string
	Error     string
	CSRFField template.HTML
	Username  string

	// Submitted values, kept when a form is re-rendered with an error
	Form     map[string]string
	Statuses []entities.BookStatus

	Books       []entities.Book
	GenreChart  template.URL
	StatusChart template.URL
}

type actionHandler func(c *gin.Context, state navigation.State, action string)

// ScreenController serves every screen from a single URL. GET / renders the
// screen held in the session; POST / applies the form's action to it and
// redirects back to GET /.
type ScreenController struct {
	library  Library
	sessions *auth.SessionManager
	charts   charts.Options
	logger   *zap.Logger
	handlers map[navigation.Page]actionHandler
}

func NewScreenController(library Library, sessions *auth.SessionManager, chartOpts charts.Options, logger *zap.Logger) *ScreenController {
	if logger == nil {
		logger = zap.NewNop()
	}
	sc := &ScreenController{
		library:  library,
		sessions: sessions,
		charts:   chartOpts,
		logger:   logger,
	}
	sc.handlers = map[navigation.Page]actionHandler{
		navigation.PageHome:      sc.actHome,
		navigation.PageRegister:  sc.actRegister,
		navigation.PageLogin:     sc.actLogin,
		navigation.PageMenu:      sc.actMenu,
		navigation.PageAddBook:   sc.actAddBook,
		navigation.PageViewBooks: sc.actViewBooks,
	}
	return sc
}

// Show renders the current screen.
func (sc *ScreenController) Show(c *gin.Context) {
	state := auth.GetState(c)
	data := sc.baseData(c, state)
	data.Flash = sc.sessions.PopFlash(c.Request.Context())

	if state.Page == navigation.PageViewBooks {
		if err := sc.loadLibrary(c, &data); err != nil {
			respondInternalError(c, sc.logger, err, "view books")
			return
		}
	}

	c.HTML(http.StatusOK, templateName(state.Page), data)
}

// Act dispatches the posted action to the current screen's handler.
func (sc *ScreenController) Act(c *gin.Context) {
	state := auth.GetState(c)
	action := c.PostForm("action")

	handler, ok := sc.handlers[state.Page]
	if !ok {
		redirectHome(c)
		return
	}
	handler(c, state, action)
}

func (sc *ScreenController) actHome(c *gin.Context, state navigation.State, action string) {
	sc.transition(c, state, navigation.Event{Action: navigation.Action(action)})
}

func (sc *ScreenController) actRegister(c *gin.Context, state navigation.State, action string) {
	if action != actionSubmit {
		sc.transition(c, state, navigation.Event{Action: navigation.Action(action)})
		return
	}

	var in validation.Registration
	if err := c.ShouldBind(&in); err != nil {
		sc.logBindError(c, state, err)
	}

	_, err := sc.library.Register(c.Request.Context(), in)
	if errors.Is(err, validation.ErrInvalidInput) {
		sc.renderError(c, state, navigation.MsgInvalidInput, map[string]string{
			"username": in.Username,
			"email":    in.Email,
		})
		return
	}
	if err != nil {
		respondInternalError(c, sc.logger, err, "register")
		return
	}

	sc.sessions.Flash(c.Request.Context(), navigation.MsgRegistered)
	sc.transition(c, state, navigation.Event{Action: navigation.ActionSubmitValid})
}

func (sc *ScreenController) actLogin(c *gin.Context, state navigation.State, action string) {
	if action != actionSubmit {
		sc.transition(c, state, navigation.Event{Action: navigation.Action(action)})
		return
	}

	email := c.PostForm("email")
	user, err := sc.library.Login(c.Request.Context(), email, c.PostForm("password"))
	if errors.Is(err, services.ErrInvalidCredentials) {
		sc.renderError(c, state, navigation.MsgInvalidCredentials, map[string]string{"email": email})
		return
	}
	if err != nil {
		respondInternalError(c, sc.logger, err, "login")
		return
	}

	sc.sessions.Flash(c.Request.Context(), navigation.MsgLoggedIn)
	sc.transition(c, state, navigation.Event{
		Action: navigation.ActionSubmitSuccess,
		User:   &navigation.Identity{UserID: user.ID, Username: user.Username},
	})
}

func (sc *ScreenController) actMenu(c *gin.Context, state navigation.State, action string) {
	sc.transition(c, state, navigation.Event{Action: navigation.Action(action)})
}

func (sc *ScreenController) actAddBook(c *gin.Context, state navigation.State, action string) {
	if action != actionSubmit {
		sc.transition(c, state, navigation.Event{Action: navigation.Action(action)})
		return
	}

	var in validation.BookInput
	if err := c.ShouldBind(&in); err != nil {
		sc.logBindError(c, state, err)
	}

	_, err := sc.library.AddBook(c.Request.Context(), auth.GetUserID(c), in)
	if errors.Is(err, validation.ErrMissingFields) {
		sc.renderError(c, state, navigation.MsgMissingFields, map[string]string{
			"title":  in.Title,
			"author": in.Author,
			"genre":  in.Genre,
			"status": string(in.Status),
		})
		return
	}
	if err != nil {
		respondInternalError(c, sc.logger, err, "add book")
		return
	}

	// Adding a book keeps the user on the form
	sc.sessions.Flash(c.Request.Context(), navigation.MsgBookAdded)
	redirectHome(c)
}

func (sc *ScreenController) actViewBooks(c *gin.Context, state navigation.State, action string) {
	switch action {
	case actionDownloadCSV, actionDownloadPDF:
		sc.download(c, action)
	default:
		sc.transition(c, state, navigation.Event{Action: navigation.Action(action)})
	}
}

func (sc *ScreenController) download(c *gin.Context, action string) {
	books, err := sc.library.ListBooks(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		respondInternalError(c, sc.logger, err, "download")
		return
	}
	// The download buttons are only offered for a non-empty library
	if len(books) == 0 {
		redirectHome(c)
		return
	}

	if action == actionDownloadCSV {
		data, err := reports.GenerateCSV(books)
		if err != nil {
			respondInternalError(c, sc.logger, err, "generate CSV")
			return
		}
		sendAttachment(c, reports.CSVFilename(auth.GetUsername(c)), reports.CSVContentType, data)
		return
	}

	data, err := reports.GeneratePDF(books, auth.GetUsername(c))
	if err != nil {
		respondInternalError(c, sc.logger, err, "generate PDF")
		return
	}
	sendAttachment(c, reports.PDFFilename, reports.PDFContentType, data)
}

// transition applies the event, stores the resulting state and redirects.
// Actions the current screen does not offer leave the state as it is.
func (sc *ScreenController) transition(c *gin.Context, state navigation.State, event navigation.Event) {
	next, err := navigation.Transition(state, event)
	if err != nil {
		sc.logger.Debug("ignoring action",
			zap.String("page", string(state.Page)),
			zap.String("action", string(event.Action)),
			zap.String("request_id", GetRequestID(c)))
		redirectHome(c)
		return
	}

	if err := sc.sessions.SaveState(c.Request.Context(), next); err != nil {
		respondInternalError(c, sc.logger, err, "save session")
		return
	}
	redirectHome(c)
}

// logBindError records a form that could not be bound. The handler carries
// on with whatever fields were bound and lets validation reject the rest.
func (sc *ScreenController) logBindError(c *gin.Context, state navigation.State, err error) {
	sc.logger.Debug("failed to bind form",
		zap.String("page", string(state.Page)),
		zap.String("request_id", GetRequestID(c)),
		zap.Error(err))
}

// renderError re-renders the current screen with a validation message.
func (sc *ScreenController) renderError(c *gin.Context, state navigation.State, message string, form map[string]string) {
	data := sc.baseData(c, state)
	data.Error = message
	data.Form = form
	c.HTML(http.StatusOK, templateName(state.Page), data)
}

func (sc *ScreenController) baseData(c *gin.Context, state navigation.State) screenData {
	data := screenData{
		Page:      state.Page,
		CSRFField: auth.CSRFTokenField(c),
		Statuses:  entities.BookStatuses,
	}
	if auth.IsAuthenticated(c) {
		data.Username = auth.GetUsername(c)
	}
	return data
}

// loadLibrary fills in the user's books and, when there are any, both charts.
func (sc *ScreenController) loadLibrary(c *gin.Context, data *screenData) error {
	books, err := sc.library.ListBooks(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		return err
	}
	data.Books = books
	if len(books) == 0 {
		return nil
	}

	pie, err := charts.RenderPie(charts.GenreDistribution(books), sc.charts)
	if err != nil {
		return err
	}
	bar, err := charts.RenderBar(charts.StatusDistribution(books), sc.charts)
	if err != nil {
		return err
	}
	data.GenreChart = pngDataURL(pie)
	data.StatusChart = pngDataURL(bar)
	return nil
}

func pngDataURL(png []byte) template.URL {
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
}

func templateName(page navigation.Page) string {
	return string(page) + ".html"
}
