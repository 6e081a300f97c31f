package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/core-banking/internal/adapter/http/models"
	"github.com/api-sage/core-banking/internal/commons"
	"github.com/api-sage/core-banking/internal/logger"
	"github.com/api-sage/core-banking/internal/usecase/service_interfaces"
)

type TransactionController struct {
	ledger     service_interfaces.LedgerService
	statistics service_interfaces.StatisticsService
}

func NewTransactionController(ledger service_interfaces.LedgerService, statistics service_interfaces.StatisticsService) *TransactionController {
	return &TransactionController{ledger: ledger, statistics: statistics}
}

func (c *TransactionController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}

	mux.Handle("POST /transactions/deposit", wrap(postingHandler(c.ledger.Deposit)))
	mux.Handle("POST /transactions/withdrawal", wrap(postingHandler(c.ledger.Withdraw)))
	mux.Handle("POST /transactions/transfer", wrap(postingHandler(c.ledger.Transfer)))
	mux.Handle("POST /transactions/payment", wrap(postingHandler(c.ledger.Pay)))
	mux.Handle("POST /transactions/fee", wrap(postingHandler(c.ledger.ApplyFee)))
	mux.Handle("POST /transactions/interest", wrap(postingHandler(c.ledger.ApplyInterest)))
	mux.Handle("POST /transactions/{id}/reverse", wrap(c.reverse))
	mux.Handle("GET /transactions/{id}", wrap(c.getByID))
	mux.Handle("GET /transactions/by-reference/{referenceId}", wrap(c.getByReference))
	mux.Handle("GET /accounts/{id}/transactions", wrap(c.listForAccount))
	mux.Handle("GET /accounts/{id}/stats", wrap(c.stats))
}

// postingHandler adapts one ledger posting operation into an HTTP handler.
// Every posting endpoint decodes a body, calls the service with the request
// actor and maps the error taxonomy onto a status code the same way.
func postingHandler[Req any](operation func(ctx context.Context, req Req, actor models.Actor) (commons.Response[models.TransactionResponse], error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		var req Req
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logError(r, err, nil)
			response := commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error())
			writeJSON(w, http.StatusBadRequest, response)
			logResponse(r, http.StatusBadRequest, response, start)
			return
		}
		logRequest(r, req)

		response, err := operation(r.Context(), req, actorFromRequest(r))
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
}

func (c *TransactionController) reverse(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.ledger.Reverse(r.Context(), r.PathValue("id"), actorFromRequest(r))
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

func (c *TransactionController) getByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	response, err := c.ledger.GetTransaction(r.Context(), r.PathValue("id"))
	if err != nil {
		status := statusForError(err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *TransactionController) getByReference(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	response, err := c.ledger.GetTransactionByReference(r.Context(), r.PathValue("referenceId"))
	if err != nil {
		status := statusForError(err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *TransactionController) listForAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	req := models.ListTransactionsRequest{
		TransactionType: r.URL.Query().Get("type"),
		Status:          r.URL.Query().Get("status"),
		StartDate:       queryTime(r, "startDate"),
		EndDate:         queryTime(r, "endDate"),
		MinAmount:       queryDecimal(r, "minAmount"),
		MaxAmount:       queryDecimal(r, "maxAmount"),
		Offset:          queryInt(r, "offset", 0),
		Limit:           queryInt(r, "limit", 0),
	}

	response, err := c.ledger.ListAccountTransactions(r.Context(), r.PathValue("id"), req)
	if err != nil {
		status := statusForError(err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *TransactionController) stats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.statistics.ComputeStats(r.Context(), r.PathValue("id"), queryInt(r, "days", 0))
	if err != nil {
		status := statusForError(err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
