package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/core-banking/internal/adapter/http/models"
	"github.com/api-sage/core-banking/internal/commons"
	"github.com/api-sage/core-banking/internal/logger"
	"github.com/api-sage/core-banking/internal/usecase/service_interfaces"
)

type AccountController struct {
	service service_interfaces.AccountService
}

func NewAccountController(service service_interfaces.AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}

	mux.Handle("POST /accounts", wrap(c.create))
	mux.Handle("GET /accounts/{id}", wrap(c.getByID))
	mux.Handle("GET /accounts/by-number/{accountNumber}", wrap(c.getByNumber))
	mux.Handle("GET /users/{id}/accounts", wrap(c.listForUser))
	mux.Handle("POST /accounts/{id}/activate", wrap(c.activate))
	mux.Handle("POST /accounts/{id}/deactivate", wrap(c.deactivate))
	mux.Handle("DELETE /accounts/{id}", wrap(c.delete))
}

func (c *AccountController) create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.CreateAccount(r.Context(), req, actorFromRequest(r))
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusForError(err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *AccountController) getByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	response, err := c.service.GetAccount(r.Context(), r.PathValue("id"))
	if err != nil {
		status := statusForError(err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) getByNumber(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	response, err := c.service.GetAccountByNumber(r.Context(), r.PathValue("accountNumber"))
	if err != nil {
		status := statusForError(err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) listForUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.ListAccounts(r.Context(), r.PathValue("id"))
	if err != nil {
		status := statusForError(err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) activate(w http.ResponseWriter, r *http.Request) {
	c.setActive(w, r, true)
}

func (c *AccountController) deactivate(w http.ResponseWriter, r *http.Request) {
	c.setActive(w, r, false)
}

func (c *AccountController) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.SetAccountActive(r.Context(), r.PathValue("id"), active, actorFromRequest(r))
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusForError(err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) delete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.DeleteAccount(r.Context(), r.PathValue("id"), actorFromRequest(r))
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusForError(err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
