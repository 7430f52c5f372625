package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/SergeyKozhin/calendar-import/internal/pkg/jwt"
)

type contextKey string

const contextKeyID = contextKey("id")

var errCantRetrieveID = errors.New("can't retrieve id")

func (a *Api) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			a.unauthorizedResponse(w, r, errors.New("no token provided"))
			return
		}

		token = strings.TrimPrefix(token, "Bearer ")

		id, err := a.jwts.GetIdFromToken(token)
		if err != nil {
			invalidTokenErr := &jwt.InvalidTokenError{}
			switch {
			case errors.As(err, &invalidTokenErr):
				a.unauthorizedResponse(w, r, invalidTokenErr)
			default:
				a.serverErrorResponse(w, r, err)
			}
			return
		}

		idContext := context.WithValue(r.Context(), contextKeyID, id)
		next.ServeHTTP(w, r.WithContext(idContext))
	})
}

func userID(r *http.Request) (string, error) {
	id, ok := r.Context().Value(contextKeyID).(string)
	if !ok || id == "" {
		return "", errCantRetrieveID
	}
	return id, nil
}
