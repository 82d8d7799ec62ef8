package company

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ThomasRolland/comptalib/db"
	"github.com/ThomasRolland/comptalib/internal/response"

	"github.com/gorilla/mux"
)

type CompanyHandlers struct {
	Service *CompanyService
}

func NewCompanyHandlers(service *CompanyService) *CompanyHandlers {
	return &CompanyHandlers{Service: service}
}

type companyDto struct {
	Name    string `json:"name"`
	ZipCode *int   `json:"zipCode"`
}

type addUsersDto struct {
	UserID []int `json:"userId"`
}

// GetAllCompanies returns every company with its users.
func (h *CompanyHandlers) GetAllCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.Service.FindAll(r.Context())
	if err != nil {
		response.BadRequest(w)
		return
	}
	response.JSON(w, http.StatusOK, companies, "")
}

// GetCompany returns one company by id, or null data if absent.
func (h *CompanyHandlers) GetCompany(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.JSON(w, http.StatusOK, nil, "")
		return
	}

	company, err := h.Service.FindByID(r.Context(), id)
	if err != nil {
		response.BadRequest(w)
		return
	}
	response.JSON(w, http.StatusOK, company, "")
}

// CreateCompany inserts a new company.
func (h *CompanyHandlers) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var dto companyDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		response.BadRequest(w)
		return
	}

	if dto.Name == "" {
		response.JSON(w, http.StatusBadRequest, nil, "name cannot be null")
		return
	}

	created, err := h.Service.Create(r.Context(), dto.Name, dto.ZipCode)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, created, "")
}

// UpdateCompany applies a partial update and returns the re-fetched row.
func (h *CompanyHandlers) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var dto companyDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		response.BadRequest(w)
		return
	}

	updated, err := h.Service.Update(r.Context(), id, dto.Name, dto.ZipCode)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated, "")
}

// DeleteCompany removes a company by id and returns the deletion count.
func (h *CompanyHandlers) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	count, err := h.Service.Delete(r.Context(), id)
	if err != nil {
		response.BadRequest(w)
		return
	}
	response.JSON(w, http.StatusOK, count, "")
}

// AddUsers links the listed users to the company and returns the company
// with its current user list. Ids that could not be linked are reported in
// the response message rather than failing the call.
func (h *CompanyHandlers) AddUsers(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var dto addUsersDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		response.BadRequest(w)
		return
	}

	company, failed, err := h.Service.AddUsers(r.Context(), id, dto.UserID)
	if err != nil {
		response.BadRequest(w)
		return
	}

	message := ""
	if len(failed) > 0 {
		message = fmt.Sprintf("users not added: %v", failed)
	}
	response.JSON(w, http.StatusOK, company, message)
}

func writeStoreError(w http.ResponseWriter, err error) {
	var constraintErr *db.ConstraintError
	if errors.As(err, &constraintErr) {
		response.JSON(w, http.StatusBadRequest, nil, constraintErr.Message)
		return
	}
	response.BadRequest(w)
}
