package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/absence-management-api/internal/domain"
	"github.com/absence-management-api/internal/dto"
	"github.com/absence-management-api/internal/service"
	"github.com/go-playground/validator/v10"
)

type DepartmentHandler struct {
	deptService service.DepartmentService
	empService  service.EmployeeService
	validator   *validator.Validate
	logger      *slog.Logger
}

func NewDepartmentHandler(
	deptService service.DepartmentService,
	empService service.EmployeeService,
	logger *slog.Logger,
) *DepartmentHandler {
	return &DepartmentHandler{
		deptService: deptService,
		empService:  empService,
		validator:   validator.New(),
		logger:      logger,
	}
}

func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(w, r, h.logger)
	if !ok {
		return
	}

	var req dto.CreateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	dept, err := h.deptService.Create(r.Context(), ident, &req)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, "department created", h.toDepartmentResponse(dept, false))
}

func (h *DepartmentHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := identityFrom(w, r, h.logger); !ok {
		return
	}

	departments, err := h.deptService.List(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	resp := make([]dto.DepartmentResponse, len(departments))
	for i, dept := range departments {
		resp[i] = h.toDepartmentResponse(&dept, false)
	}

	respondJSON(w, h.logger, http.StatusOK, "", resp)
}

func (h *DepartmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if _, ok := identityFrom(w, r, h.logger); !ok {
		return
	}

	id, err := h.extractID(r)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid department id", err.Error())
		return
	}

	includeEmployees := r.URL.Query().Get("include_employees") == "true"

	dept, err := h.deptService.GetByID(r.Context(), id, includeEmployees)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, "", h.toDepartmentResponse(dept, includeEmployees))
}

func (h *DepartmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(w, r, h.logger)
	if !ok {
		return
	}

	id, err := h.extractID(r)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid department id", err.Error())
		return
	}

	var req dto.UpdateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	dept, err := h.deptService.Update(r.Context(), ident, id, &req)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, "department updated", h.toDepartmentResponse(dept, false))
}

func (h *DepartmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(w, r, h.logger)
	if !ok {
		return
	}

	id, err := h.extractID(r)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid department id", err.Error())
		return
	}

	if err := h.deptService.Delete(r.Context(), ident, id); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *DepartmentHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(w, r, h.logger)
	if !ok {
		return
	}

	deptID, err := h.extractID(r)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid department id", err.Error())
		return
	}

	var req dto.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	emp, err := h.empService.Create(r.Context(), ident, deptID, &req)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, "employee created", h.toEmployeeResponse(emp))
}

func (h *DepartmentHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	if _, ok := identityFrom(w, r, h.logger); !ok {
		return
	}

	deptID, err := h.extractID(r)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid department id", err.Error())
		return
	}

	employees, err := h.empService.GetByDepartmentID(r.Context(), deptID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	resp := make([]dto.EmployeeResponse, len(employees))
	for i, emp := range employees {
		resp[i] = h.toEmployeeResponse(&emp)
	}

	respondJSON(w, h.logger, http.StatusOK, "", resp)
}

func (h *DepartmentHandler) extractID(r *http.Request) (int64, error) {
	path := strings.TrimPrefix(r.URL.Path, "/departments/")
	path = strings.Trim(path, "/")
	path = strings.TrimSuffix(path, "/employees")

	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		return 0, errors.New("id is required")
	}

	return strconv.ParseInt(parts[0], 10, 64)
}

func (h *DepartmentHandler) toDepartmentResponse(dept *domain.Department, includeEmployees bool) dto.DepartmentResponse {
	resp := dto.DepartmentResponse{
		ID:            dept.ID,
		Name:          dept.Name,
		ManagerID:     dept.ManagerID,
		Location:      dept.Location,
		EmployeeCount: dept.EmployeeCount,
		CreatedAt:     dept.CreatedAt,
	}

	if includeEmployees && len(dept.Employees) > 0 {
		resp.Employees = make([]dto.EmployeeResponse, len(dept.Employees))
		for i, emp := range dept.Employees {
			resp.Employees[i] = h.toEmployeeResponse(&emp)
		}
	}

	return resp
}

func (h *DepartmentHandler) toEmployeeResponse(emp *domain.Employee) dto.EmployeeResponse {
	resp := dto.EmployeeResponse{
		ID:           emp.ID,
		AccountID:    emp.AccountID,
		DepartmentID: emp.DepartmentID,
		Position:     emp.Position,
		ManagerID:    emp.ManagerID,
		Status:       emp.Status,
		CreatedAt:    emp.CreatedAt,
	}

	if emp.HireDate != nil {
		hireDate := emp.HireDate.Format("2006-01-02")
		resp.HireDate = &hireDate
	}

	return resp
}
