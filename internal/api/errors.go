package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SergeyKozhin/calendar-import/internal/model"
)

func (a *Api) logError(_ *http.Request, err error) {
	a.logger.Errorw("server error", "error", err)
}

func (a *Api) errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	data := map[string]interface{}{"error": message}

	if err := a.writeJSON(w, status, data, nil); err != nil {
		a.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (a *Api) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	a.logError(r, err)

	message := "the server encountered a problem and could not process your request"
	a.errorResponse(w, r, http.StatusInternalServerError, message)
}

func (a *Api) clientErrorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	a.logger.Debugw("client error", "err", message)
	a.errorResponse(w, r, status, message)
}

func (a *Api) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	a.clientErrorResponse(w, r, http.StatusNotFound, message)
}

func (a *Api) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("the %s method is not supported for this resource", r.Method)
	a.clientErrorResponse(w, r, http.StatusMethodNotAllowed, message)
}

func (a *Api) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	a.clientErrorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (a *Api) failedValidationResponse(w http.ResponseWriter, r *http.Request, errs map[string]string) {
	a.clientErrorResponse(w, r, http.StatusUnprocessableEntity, errs)
}

func (a *Api) unauthorizedResponse(w http.ResponseWriter, r *http.Request, err error) {
	a.clientErrorResponse(w, r, http.StatusUnauthorized, err.Error())
}

var importErrorStatus = map[model.ErrorKind]int{
	model.KindTransportFailure:   http.StatusBadGateway,
	model.KindInvalidPayload:     http.StatusUnprocessableEntity,
	model.KindNoEvents:           http.StatusUnprocessableEntity,
	model.KindMalformed:          http.StatusUnprocessableEntity,
	model.KindPersistenceFailure: http.StatusInternalServerError,
	model.KindCancelled:          http.StatusConflict,
	model.KindInvalidRequest:     http.StatusUnprocessableEntity,
}

// importErrorResponse reports a failed import with the stage it failed at.
func (a *Api) importErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var importErr *model.ImportError
	if !errors.As(err, &importErr) {
		a.serverErrorResponse(w, r, err)
		return
	}

	status, ok := importErrorStatus[importErr.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		a.logError(r, importErr)
	} else {
		a.logger.Debugw("import failed", "stage", importErr.Stage, "kind", importErr.Kind, "err", importErr)
	}

	data := map[string]interface{}{
		"error": importErr.Error(),
		"stage": importErr.Stage,
	}

	if err := a.writeJSON(w, status, data, nil); err != nil {
		a.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}
