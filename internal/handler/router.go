package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/absence-management-api/internal/middleware"
	"github.com/absence-management-api/internal/service"
)

// Router настраивает маршруты API
type Router struct {
	mux                 *http.ServeMux
	logger              *slog.Logger
	identities          service.IdentityService
	absenceHandler      *AbsenceHandler
	balanceHandler      *BalanceHandler
	notificationHandler *NotificationHandler
	deptHandler         *DepartmentHandler
}

// NewRouter создаёт новый роутер
func NewRouter(
	identities service.IdentityService,
	absenceHandler *AbsenceHandler,
	balanceHandler *BalanceHandler,
	notificationHandler *NotificationHandler,
	deptHandler *DepartmentHandler,
	logger *slog.Logger,
) *Router {
	return &Router{
		mux:                 http.NewServeMux(),
		logger:              logger,
		identities:          identities,
		absenceHandler:      absenceHandler,
		balanceHandler:      balanceHandler,
		notificationHandler: notificationHandler,
		deptHandler:         deptHandler,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	// Регистрируем обработчики
	r.mux.HandleFunc("/absences", r.absencesRouter)
	r.mux.HandleFunc("/absences/", r.absencesRouter)
	r.mux.HandleFunc("/balances/", r.balancesRouter)
	r.mux.HandleFunc("/notifications", r.notificationsRouter)
	r.mux.HandleFunc("/notifications/", r.notificationsRouter)
	r.mux.HandleFunc("/departments", r.departmentsRouter)
	r.mux.HandleFunc("/departments/", r.departmentsRouter)

	// Все маршруты API требуют идентичности вызывающего
	api := middleware.Identity(r.identities, r.logger)(r.mux)

	root := http.NewServeMux()
	root.Handle("/", api)

	// Health check без аутентификации
	root.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Применяем middleware
	handler := middleware.ContentType(root)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.Recoverer(r.logger)(handler)

	return handler
}

// absencesRouter обрабатывает все запросы к /absences
func (r *Router) absencesRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, "/absences")
	path = strings.Trim(path, "/")

	// POST /absences - подача заявки, GET /absences - список
	if path == "" {
		switch req.Method {
		case http.MethodPost:
			r.absenceHandler.Create(w, req)
		case http.MethodGet:
			r.absenceHandler.List(w, req)
		default:
			http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		}
		return
	}

	parts := strings.Split(path, "/")

	if len(parts) == 1 {
		// /absences/{id}
		switch req.Method {
		case http.MethodGet:
			r.absenceHandler.GetByID(w, req)
		case http.MethodPut:
			r.absenceHandler.Update(w, req)
		case http.MethodDelete:
			r.absenceHandler.Cancel(w, req)
		default:
			http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		}
		return
	}

	if len(parts) == 2 && parts[1] == "process" {
		// POST /absences/{id}/process - решение руководителя
		if req.Method == http.MethodPost {
			r.absenceHandler.Process(w, req)
			return
		}
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	if len(parts) == 2 && parts[1] == "status" {
		// PATCH /absences/{id}/status - прямая установка статуса
		if req.Method == http.MethodPatch {
			r.absenceHandler.UpdateStatus(w, req)
			return
		}
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
}

// balancesRouter обрабатывает все запросы к /balances
func (r *Router) balancesRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, "/balances")
	path = strings.Trim(path, "/")

	// GET /balances/me - собственный остаток
	if path == "me" {
		if req.Method == http.MethodGet {
			r.balanceHandler.GetOwn(w, req)
			return
		}
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	if path != "" && !strings.Contains(path, "/") {
		// /balances/{employeeID}
		switch req.Method {
		case http.MethodGet:
			r.balanceHandler.GetForEmployee(w, req)
		case http.MethodPut:
			r.balanceHandler.Set(w, req)
		default:
			http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		}
		return
	}

	http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
}

// notificationsRouter обрабатывает все запросы к /notifications
func (r *Router) notificationsRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, "/notifications")
	path = strings.Trim(path, "/")

	// GET /notifications - входящие
	if path == "" {
		if req.Method == http.MethodGet {
			r.notificationHandler.Inbox(w, req)
			return
		}
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	// POST /notifications/read-all
	if path == "read-all" {
		if req.Method == http.MethodPost {
			r.notificationHandler.MarkAllRead(w, req)
			return
		}
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	parts := strings.Split(path, "/")

	if len(parts) == 1 {
		// DELETE /notifications/{id}
		if req.Method == http.MethodDelete {
			r.notificationHandler.Delete(w, req)
			return
		}
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	if len(parts) == 2 && parts[1] == "read" {
		// PATCH /notifications/{id}/read
		if req.Method == http.MethodPatch {
			r.notificationHandler.MarkRead(w, req)
			return
		}
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
}

// departmentsRouter обрабатывает все запросы к /departments
func (r *Router) departmentsRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, "/departments")
	path = strings.Trim(path, "/")

	// POST /departments - создание, GET /departments - список
	if path == "" {
		switch req.Method {
		case http.MethodPost:
			r.deptHandler.Create(w, req)
		case http.MethodGet:
			r.deptHandler.List(w, req)
		default:
			http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		}
		return
	}

	parts := strings.Split(path, "/")

	if len(parts) == 1 {
		// /departments/{id}
		switch req.Method {
		case http.MethodGet:
			r.deptHandler.GetByID(w, req)
		case http.MethodPatch:
			r.deptHandler.Update(w, req)
		case http.MethodDelete:
			r.deptHandler.Delete(w, req)
		default:
			http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		}
		return
	}

	if len(parts) == 2 && parts[1] == "employees" {
		// /departments/{id}/employees
		switch req.Method {
		case http.MethodPost:
			r.deptHandler.CreateEmployee(w, req)
		case http.MethodGet:
			r.deptHandler.ListEmployees(w, req)
		default:
			http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		}
		return
	}

	http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
}
