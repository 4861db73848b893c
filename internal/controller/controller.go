package controller

import (
	"net/http"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/auth"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/service"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/ws"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Controller — HTTP-слой поверх сервисов. Тонкий: разбор запроса,
// проверка роли, вызов сервиса, сериализация ответа.
type Controller struct {
	users       *service.UserService
	assignments *service.AssignmentService
	sessions    *service.SessionService
	attendance  *service.AttendanceService
	progress    *service.ProgressService
	tokens      *auth.TokenManager
	wsServer    *ws.Server
	validate    *validator.Validate
	logger      *zap.Logger
}

func New(
	users *service.UserService,
	assignments *service.AssignmentService,
	sessions *service.SessionService,
	attendance *service.AttendanceService,
	progress *service.ProgressService,
	tokens *auth.TokenManager,
	wsServer *ws.Server,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		users:       users,
		assignments: assignments,
		sessions:    sessions,
		attendance:  attendance,
		progress:    progress,
		tokens:      tokens,
		wsServer:    wsServer,
		validate:    validator.New(),
		logger:      logger,
	}
}

// Routes собирает все маршруты API
func (c *Controller) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", c.handleLogin)
	mux.HandleFunc("POST /auth/change-password", c.handleChangePassword)
	mux.HandleFunc("POST /auth/reset-password/{id}", c.handleResetPassword)

	mux.HandleFunc("GET /users/", c.handleListUsers)
	mux.HandleFunc("POST /users/", c.handleCreateUser)
	mux.HandleFunc("GET /users/{id}", c.handleGetUser)
	mux.HandleFunc("PUT /users/{id}", c.handleUpdateUser)
	mux.HandleFunc("DELETE /users/{id}", c.handleDeleteUser)
	mux.HandleFunc("GET /users/{id}/password-logs", c.handlePasswordLogs)

	mux.HandleFunc("GET /assignments/", c.handleListAssignments)
	mux.HandleFunc("POST /assignments/", c.handleAssignStudent)
	mux.HandleFunc("DELETE /assignments/{studentID}/{teacherID}", c.handleUnassignStudent)

	mux.HandleFunc("GET /sessions/", c.handleListSessions)
	mux.HandleFunc("POST /sessions/", c.handleCreateSession)
	mux.HandleFunc("GET /sessions/link/{token}", c.handleSessionByLink)
	mux.HandleFunc("GET /sessions/{id}", c.handleGetSession)
	mux.HandleFunc("PUT /sessions/{id}", c.handleUpdateSession)
	mux.HandleFunc("DELETE /sessions/{id}", c.handleDeleteSession)
	mux.HandleFunc("POST /sessions/{id}/trainees/{traineeID}", c.handleAddTrainee)
	mux.HandleFunc("DELETE /sessions/{id}/trainees/{traineeID}", c.handleRemoveTrainee)
	mux.HandleFunc("POST /sessions/{id}/attendance/{traineeID}", c.handleMarkAttendance)
	mux.HandleFunc("GET /sessions/{id}/attendance", c.handleSessionAttendance)

	mux.HandleFunc("GET /progress/trainees/{id}", c.handleTraineeProgress)
	mux.HandleFunc("GET /progress/trainers/{id}/roster", c.handleTrainerRosterStatus)

	mux.HandleFunc("GET /analytics/users", c.handleUserAnalytics)
	mux.HandleFunc("GET /analytics/sessions", c.handleSessionAnalytics)
	mux.HandleFunc("GET /reports/generate", c.handleGenerateReport)

	mux.Handle("GET /ws", c.wsServer.Handler())

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	return mux
}
