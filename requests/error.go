package requests

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"github.com/bhavishkl/NoQue/constants"
)

func RespondWithError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	_, _ = w.Write(marshalErrorBody(message))
}

func RespondWithDBError(w http.ResponseWriter, err error) {
	if err == sql.ErrNoRows {
		RespondNotFound(w)
		return
	}
	log.Printf("db error: %s\n", err)
	RespondInternalError(w)
}

func RespondNotFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(marshalErrorBody(constants.ErrorNotFound))
}

func RespondBadRequest(w http.ResponseWriter) {
	w.WriteHeader(http.StatusBadRequest)
	_, _ = w.Write(marshalErrorBody(constants.ErrorBadRequest))
}

func RespondMissingFields(w http.ResponseWriter) {
	w.WriteHeader(http.StatusBadRequest)
	_, _ = w.Write(marshalErrorBody(constants.ErrorMissingFields))
}

func RespondInternalError(w http.ResponseWriter) {
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write(marshalErrorBody(constants.ErrorInternal))
}

func RespondAuthError(w http.ResponseWriter) {
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write(marshalErrorBody(constants.ErrorNotAuthenticated))
}

func RespondForbidden(w http.ResponseWriter) {
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write(marshalErrorBody(constants.ErrorForbidden))
}

func marshalErrorBody(e string) []byte {
	body, err := json.MarshalIndent(ErrorResponse{Error: e}, "", " ")
	if err != nil {
		body, _ = json.MarshalIndent(ErrorResponse{Error: err.Error()}, "", " ")
	}
	return body
}

type ErrorResponse struct {
	Error string `json:"error"`
}
