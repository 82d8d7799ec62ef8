package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ThomasRolland/comptalib/db"
	"github.com/ThomasRolland/comptalib/internal/auth"
	"github.com/ThomasRolland/comptalib/internal/response"
	"github.com/ThomasRolland/comptalib/models"

	"github.com/gorilla/mux"
)

type UserHandlers struct {
	Service *UserService
	Tokens  *auth.TokenService
}

func NewUserHandlers(service *UserService, tokens *auth.TokenService) *UserHandlers {
	return &UserHandlers{Service: service, Tokens: tokens}
}

type credentialsDto struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// userWithToken wraps a user row with the freshly issued identity token
// returned on registration and login.
type userWithToken struct {
	*models.User
	OauthToken string `json:"oauth_token"`
}

// GetAllUsers returns every user with their companies.
func (h *UserHandlers) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.FindAll(r.Context())
	if err != nil {
		response.BadRequest(w)
		return
	}
	response.JSON(w, http.StatusOK, users, "")
}

// GetUser returns one user by id, or null data if absent.
func (h *UserHandlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.JSON(w, http.StatusOK, nil, "")
		return
	}

	user, err := h.Service.FindByID(r.Context(), id)
	if err != nil {
		response.BadRequest(w)
		return
	}
	response.JSON(w, http.StatusOK, user, "")
}

// CreateUser registers a user and auto-logs it in: the response carries a
// freshly issued token alongside the created row.
func (h *UserHandlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var dto credentialsDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		response.BadRequest(w)
		return
	}

	if dto.Username == "" {
		response.JSON(w, http.StatusBadRequest, nil, "username cannot be null")
		return
	}
	if dto.Password == "" {
		response.BadRequest(w)
		return
	}

	created, err := h.Service.Register(r.Context(), dto.Username, dto.Password)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	token, err := h.Tokens.Generate(created.ID)
	if err != nil {
		response.BadRequest(w)
		return
	}

	response.JSON(w, http.StatusOK, &userWithToken{User: created, OauthToken: token}, "")
}

// UpdateUser applies a partial update and returns the re-fetched row.
// Guarded by the self-only middleware.
func (h *UserHandlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var dto credentialsDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		response.BadRequest(w)
		return
	}

	updated, err := h.Service.Update(r.Context(), id, dto.Username, dto.Password)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated, "")
}

// DeleteUser removes a user by id and returns the deletion count. Deleting
// an absent id is not an error; the count is just 0. Guarded by the
// self-only middleware.
func (h *UserHandlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	count, err := h.Service.Delete(r.Context(), id)
	if err != nil {
		response.BadRequest(w)
		return
	}
	response.JSON(w, http.StatusOK, count, "")
}

// Login checks a username/password pair and returns the user row with a
// freshly issued token.
func (h *UserHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var dto credentialsDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		response.BadRequest(w)
		return
	}

	if dto.Username == "" {
		response.JSON(w, http.StatusBadRequest, nil, "Bad request : send username")
		return
	}

	found, err := h.Service.Repo.FindByUsername(r.Context(), dto.Username)
	if err != nil {
		if err == db.ErrNotFound {
			response.JSON(w, http.StatusBadRequest, nil, "Bad request : email and password doesn't match")
			return
		}
		response.BadRequest(w)
		return
	}

	if dto.Password == "" {
		response.JSON(w, http.StatusBadRequest, nil, "Bad request : send password")
		return
	}

	if !auth.CheckPassword(dto.Password, found.Password) {
		response.JSON(w, http.StatusBadRequest, nil, "Bad request : username and password doesn't match")
		return
	}

	token, err := h.Tokens.Generate(found.ID)
	if err != nil {
		response.BadRequest(w)
		return
	}

	response.JSON(w, http.StatusOK, &userWithToken{User: found, OauthToken: token}, "")
}

// writeStoreError maps a constraint violation to a 400 carrying its
// message, anything else to the generic bad request response.
func writeStoreError(w http.ResponseWriter, err error) {
	var constraintErr *db.ConstraintError
	if errors.As(err, &constraintErr) {
		response.JSON(w, http.StatusBadRequest, nil, constraintErr.Message)
		return
	}
	response.BadRequest(w)
}
