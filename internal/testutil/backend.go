package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/types"
)

// Failure is a canned response returned instead of running a route.
type Failure struct {
	Status int
	Body   string
}

// RecordedRequest is what the fake backend saw for one call.
type RecordedRequest struct {
	Method string
	Route  string
	Path   string
	Query  string
	Header http.Header
}

type account struct {
	client   models.Client
	password string
	token    string
}

// Backend is an in-memory stand-in for the REST backend. Routes match the
// real server's paths; failures can be injected per route.
type Backend struct {
	URL string

	mu         sync.Mutex
	server     *httptest.Server
	accounts   map[types.ClientID]*account
	dashboards map[types.DashboardID]models.Dashboard
	boards     map[types.BoardID]models.Board
	tasks      map[types.TaskID]models.Task
	taskBoard  map[types.TaskID]types.BoardID
	nextID     int
	failures   map[string]Failure
	requests   []RecordedRequest
}

// NewBackend starts a fake backend that is shut down when the test ends.
func NewBackend(t testing.TB) *Backend {
	t.Helper()

	b := &Backend{
		accounts:   map[types.ClientID]*account{},
		dashboards: map[types.DashboardID]models.Dashboard{},
		boards:     map[types.BoardID]models.Board{},
		tasks:      map[types.TaskID]models.Task{},
		taskBoard:  map[types.TaskID]types.BoardID{},
		failures:   map[string]Failure{},
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(b.record, b.inject)
	b.register(e)

	b.server = httptest.NewServer(e)
	b.URL = b.server.URL
	t.Cleanup(b.server.Close)
	return b
}

// Fail makes every call to route (an echo path such as
// "/task/updateTaskName/:id") answer with status and body.
func (b *Backend) Fail(route string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[route] = Failure{Status: status, Body: body}
}

// Recover removes an injected failure.
func (b *Backend) Recover(route string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.failures, route)
}

// Requests returns every request seen so far.
func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.requests)
}

// Calls counts requests that matched route.
func (b *Backend) Calls(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, r := range b.requests {
		if r.Route == route {
			n++
		}
	}
	return n
}

// ============================================================================
// Seeding
// ============================================================================

func (b *Backend) id() int {
	b.nextID++
	return b.nextID
}

// AddClient registers an account and returns its profile and token.
func (b *Backend) AddClient(name, email, phone, password string) (models.Client, string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addClientLocked(name, email, phone, password)
}

func (b *Backend) addClientLocked(name, email, phone, password string) (models.Client, string) {
	c := models.Client{ID: types.ClientID(b.id()), Name: name, Email: email, PhoneNumber: phone}
	token := "token-" + c.ID.String()
	b.accounts[c.ID] = &account{client: c, password: password, token: token}
	return c, token
}

// AddDashboard creates a dashboard for client.
func (b *Backend) AddDashboard(client types.ClientID, name string) models.Dashboard {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addDashboardLocked(client, name)
}

func (b *Backend) addDashboardLocked(client types.ClientID, name string) models.Dashboard {
	d := models.Dashboard{ID: types.DashboardID(b.id()), Name: name, Boards: []models.Board{}}
	if acc, ok := b.accounts[client]; ok {
		d.Client = acc.client
	}
	b.dashboards[d.ID] = d
	return d
}

// AddBoard creates a board in dashboard.
func (b *Backend) AddBoard(dashboard types.DashboardID, name string) models.Board {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addBoardLocked(dashboard, name)
}

func (b *Backend) addBoardLocked(dashboard types.DashboardID, name string) models.Board {
	bd := models.Board{ID: types.BoardID(b.id()), Name: name, DashboardID: dashboard, Tasks: []models.Task{}}
	b.boards[bd.ID] = bd
	return bd
}

// AddTask stores task on board, assigning it an id.
func (b *Backend) AddTask(board types.BoardID, task models.Task) models.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addTaskLocked(board, task)
}

func (b *Backend) addTaskLocked(board types.BoardID, task models.Task) models.Task {
	task.ID = types.TaskID(b.id())
	if task.Status == "" {
		task.Status = models.StatusNotDone
	}
	b.tasks[task.ID] = task
	b.taskBoard[task.ID] = board
	return task
}

// Task returns the stored task, if any.
func (b *Backend) Task(id types.TaskID) (models.Task, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.tasks[id]
	return t, ok
}

// Client returns the stored profile, if any.
func (b *Backend) Client(id types.ClientID) (models.Client, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.accounts[id]
	if !ok {
		return models.Client{}, false
	}
	return acc.client, true
}

// ============================================================================
// Middleware
// ============================================================================

func (b *Backend) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		b.mu.Lock()
		b.requests = append(b.requests, RecordedRequest{
			Method: req.Method,
			Route:  c.Path(),
			Path:   req.URL.Path,
			Query:  req.URL.RawQuery,
			Header: req.Header.Clone(),
		})
		b.mu.Unlock()
		return next(c)
	}
}

func (b *Backend) inject(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		b.mu.Lock()
		f, ok := b.failures[c.Path()]
		b.mu.Unlock()
		if !ok {
			return next(c)
		}
		contentType := echo.MIMETextPlainCharsetUTF8
		if strings.HasPrefix(strings.TrimSpace(f.Body), "{") || strings.HasPrefix(strings.TrimSpace(f.Body), "[") {
			contentType = echo.MIMEApplicationJSON
		}
		return c.Blob(f.Status, contentType, []byte(f.Body))
	}
}

// ============================================================================
// Routes
// ============================================================================

func (b *Backend) register(e *echo.Echo) {
	e.POST("/client/login", b.login)
	e.PATCH("/client/signin", b.signUp)
	e.POST("/client/logout", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.PATCH("/client/updateClientName/:id", b.updateClient(func(cl *models.Client, v string) { cl.Name = v }, "new_name"))
	e.PATCH("/client/updateClientEmail/:id", b.updateClient(func(cl *models.Client, v string) { cl.Email = v }, "new_email"))
	e.PATCH("/client/updateClientPhoneNumber/:id", b.updateClient(func(cl *models.Client, v string) { cl.PhoneNumber = v }, "new_phone_number"))
	e.PATCH("/client/updateClientPassword/:id", b.updatePassword)
	e.DELETE("/client/removeById/:id", b.deleteClient)

	e.GET("/dashboard/findByClientId/:id", b.dashboardsByClient)
	e.GET("/dashboard/findByDashBoardId/:id", b.dashboard)
	e.POST("/dashboard/saveDashboard", b.saveDashboard)
	e.DELETE("/dashboard/removeById/:id", b.deleteDashboard)

	e.GET("/board/getAll", b.allBoards)
	e.GET("/board/getByBoardId/:id", b.board)
	e.GET("/board/getByDashboardId/:id", b.boardsByDashboard)
	e.POST("/board/addBoard", b.addBoard)
	e.PATCH("/board/updateBoardName/:id", b.renameBoard)
	e.DELETE("/board/removeById/:id", b.deleteBoard)
	e.DELETE("/board/removeByName/:name", b.deleteBoardByName)

	e.GET("/task/getAllById/:id", b.tasksByBoard)
	e.GET("/task/getById/:id", b.task)
	e.POST("/task/addTask/:id", b.addTask)
	e.PATCH("/task/updateTaskName/:id", b.updateTask(func(t *models.Task, v string) error { t.Name = v; return nil }, "name"))
	e.PATCH("/task/updateTaskDescription/:id", b.updateTask(func(t *models.Task, v string) error { t.Description = v; return nil }, "description"))
	e.PATCH("/task/updateTaskStatus/:id", b.updateTask(func(t *models.Task, v string) error {
		s := models.TaskStatus(v)
		if !s.Valid() {
			return fmt.Errorf("invalid status %q", v)
		}
		t.Status = s
		return nil
	}, "status"))
	e.DELETE("/task/removeById/:id", b.deleteTask)
}

func paramID(c echo.Context) (int, error) {
	return strconv.Atoi(c.Param("id"))
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"message": msg})
}

func notFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, map[string]string{"message": msg})
}

func (b *Backend) login(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, acc := range b.accounts {
		if acc.client.Email == body.Email && acc.password == body.Password {
			return c.JSON(http.StatusOK, map[string]any{"token": acc.token, "client": acc.client})
		}
	}
	return c.String(http.StatusUnauthorized, "Invalid email or password")
}

func (b *Backend) signUp(c echo.Context) error {
	var body struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		PhoneNumber string `json:"phoneNumber"`
		Password    string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, acc := range b.accounts {
		if acc.client.Email == body.Email {
			return c.String(http.StatusConflict, "Email already registered")
		}
	}
	cl, token := b.addClientLocked(body.Name, body.Email, body.PhoneNumber, body.Password)
	return c.JSON(http.StatusOK, map[string]any{"token": token, "client": cl})
}

func (b *Backend) updateClient(set func(*models.Client, string), param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := paramID(c)
		if err != nil {
			return badRequest(c, "invalid id")
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		acc, ok := b.accounts[types.ClientID(id)]
		if !ok {
			return notFound(c, "Client not found")
		}
		set(&acc.client, c.QueryParam(param))
		return c.JSON(http.StatusOK, acc.client)
	}
}

func (b *Backend) updatePassword(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.accounts[types.ClientID(id)]
	if !ok {
		return notFound(c, "Client not found")
	}
	if acc.password != c.QueryParam("old_password") {
		return badRequest(c, "Old password is incorrect")
	}
	acc.password = c.QueryParam("new_password")
	return c.String(http.StatusOK, "Password updated")
}

func (b *Backend) deleteClient(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.accounts, types.ClientID(id))
	return c.NoContent(http.StatusOK)
}

// dashboardLocked assembles a dashboard with its current boards.
func (b *Backend) dashboardLocked(d models.Dashboard) models.Dashboard {
	d.Boards = []models.Board{}
	for _, bd := range b.sortedBoardsLocked() {
		if bd.DashboardID == d.ID {
			d.Boards = append(d.Boards, b.boardLocked(bd))
		}
	}
	return d
}

func (b *Backend) sortedBoardsLocked() []models.Board {
	out := make([]models.Board, 0, len(b.boards))
	for _, bd := range b.boards {
		out = append(out, bd)
	}
	slices.SortFunc(out, func(x, y models.Board) int { return int(x.ID) - int(y.ID) })
	return out
}

// boardLocked assembles a board with its current tasks.
func (b *Backend) boardLocked(bd models.Board) models.Board {
	bd.Tasks = b.tasksOfLocked(bd.ID)
	return bd
}

func (b *Backend) tasksOfLocked(board types.BoardID) []models.Task {
	out := []models.Task{}
	for id, t := range b.tasks {
		if b.taskBoard[id] == board {
			out = append(out, t)
		}
	}
	models.SortTasksByID(out)
	return out
}

func (b *Backend) dashboardsByClient(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []models.Dashboard{}
	for _, d := range b.dashboards {
		if d.Client.ID == types.ClientID(id) {
			out = append(out, b.dashboardLocked(d))
		}
	}
	slices.SortFunc(out, func(x, y models.Dashboard) int { return int(x.ID) - int(y.ID) })
	return c.JSON(http.StatusOK, out)
}

func (b *Backend) dashboard(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	d, ok := b.dashboards[types.DashboardID(id)]
	if !ok {
		return c.NoContent(http.StatusOK)
	}
	return c.JSON(http.StatusOK, b.dashboardLocked(d))
}

func (b *Backend) saveDashboard(c echo.Context) error {
	var body struct {
		DashBoardName string `json:"dashBoardName"`
		ClientID      int    `json:"clientId"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.accounts[types.ClientID(body.ClientID)]; !ok {
		return notFound(c, "Client not found")
	}
	d := b.addDashboardLocked(types.ClientID(body.ClientID), body.DashBoardName)
	return c.JSON(http.StatusOK, d)
}

func (b *Backend) deleteDashboard(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.dashboards[types.DashboardID(id)]; !ok {
		return notFound(c, "Dashboard not found")
	}
	delete(b.dashboards, types.DashboardID(id))
	return c.NoContent(http.StatusOK)
}

func (b *Backend) allBoards(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []models.Board{}
	for _, bd := range b.sortedBoardsLocked() {
		out = append(out, b.boardLocked(bd))
	}
	return c.JSON(http.StatusOK, out)
}

func (b *Backend) board(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	bd, ok := b.boards[types.BoardID(id)]
	if !ok {
		return notFound(c, "Board not found")
	}
	return c.JSON(http.StatusOK, b.boardLocked(bd))
}

func (b *Backend) boardsByDashboard(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []models.Board{}
	for _, bd := range b.sortedBoardsLocked() {
		if bd.DashboardID == types.DashboardID(id) {
			out = append(out, b.boardLocked(bd))
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (b *Backend) addBoard(c echo.Context) error {
	var body struct {
		Name        string `json:"name"`
		DashboardID int    `json:"dashboardId"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.dashboards[types.DashboardID(body.DashboardID)]; !ok {
		return notFound(c, "Dashboard not found")
	}
	return c.JSON(http.StatusOK, b.addBoardLocked(types.DashboardID(body.DashboardID), body.Name))
}

func (b *Backend) renameBoard(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	bd, ok := b.boards[types.BoardID(id)]
	if !ok {
		return notFound(c, "Board not found")
	}
	bd.Name = c.QueryParam("new_name")
	b.boards[bd.ID] = bd
	return c.JSON(http.StatusOK, b.boardLocked(bd))
}

func (b *Backend) deleteBoard(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.boards[types.BoardID(id)]; !ok {
		return notFound(c, "Board not found")
	}
	delete(b.boards, types.BoardID(id))
	return c.NoContent(http.StatusOK)
}

func (b *Backend) deleteBoardByName(c echo.Context) error {
	name := c.Param("name")
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, bd := range b.boards {
		if bd.Name == name {
			delete(b.boards, id)
			return c.NoContent(http.StatusOK)
		}
	}
	return notFound(c, "Board not found")
}

func (b *Backend) tasksByBoard(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return c.JSON(http.StatusOK, b.tasksOfLocked(types.BoardID(id)))
}

func (b *Backend) task(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.tasks[types.TaskID(id)]
	if !ok {
		return notFound(c, "Task not found")
	}
	return c.JSON(http.StatusOK, t)
}

func (b *Backend) addTask(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var t models.Task
	if err := c.Bind(&t); err != nil {
		return badRequest(c, "invalid body")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.boards[types.BoardID(id)]; !ok {
		return notFound(c, "Board not found")
	}
	if t.CreationDate.IsZero() {
		t.CreationDate = models.Today()
	}
	return c.JSON(http.StatusOK, b.addTaskLocked(types.BoardID(id), t))
}

func (b *Backend) updateTask(set func(*models.Task, string) error, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := paramID(c)
		if err != nil {
			return badRequest(c, "invalid id")
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		t, ok := b.tasks[types.TaskID(id)]
		if !ok {
			return notFound(c, "Task not found")
		}
		if err := set(&t, c.QueryParam(param)); err != nil {
			return badRequest(c, err.Error())
		}
		b.tasks[t.ID] = t
		return c.JSON(http.StatusOK, t)
	}
}

func (b *Backend) deleteTask(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.tasks[types.TaskID(id)]; !ok {
		return notFound(c, "Task not found")
	}
	delete(b.tasks, types.TaskID(id))
	delete(b.taskBoard, types.TaskID(id))
	return c.NoContent(http.StatusOK)
}
