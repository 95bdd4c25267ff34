package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	Validation   Kind = "validation"
	NotFound     Kind = "not_found"
	Unauthorized Kind = "unauthorized"
	Forbidden    Kind = "forbidden"
	Network      Kind = "network"
	Upstream     Kind = "upstream"
	Internal     Kind = "internal"
)

const genericMsg = "Une erreur inattendue s'est produite."

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *AppError) Unwrap() error { return e.Err }

// Constructors. PublicMsg must stay short and safe to display.
func ValidationErr(publicMsg string, fields map[string]string) *AppError {
	return &AppError{Kind: Validation, PublicMsg: publicMsg, Fields: fields}
}
func NotFoundErr(publicMsg string) *AppError {
	return &AppError{Kind: NotFound, PublicMsg: publicMsg}
}
func UnauthorizedErr(publicMsg string) *AppError {
	return &AppError{Kind: Unauthorized, PublicMsg: publicMsg}
}
func ForbiddenErr(publicMsg string) *AppError {
	return &AppError{Kind: Forbidden, PublicMsg: publicMsg}
}

// NetworkErr: le backend est injoignable (aucune réponse reçue).
func NetworkErr(err error) *AppError {
	return &AppError{Kind: Network, PublicMsg: "Le serveur est injoignable. Vérifiez votre connexion et réessayez.", Err: err}
}

// UpstreamErr: le backend a répondu avec un échec. publicMsg vient du champ
// "detail" de la réponse quand il existe.
func UpstreamErr(publicMsg string, err error) *AppError {
	if publicMsg == "" {
		publicMsg = genericMsg
	}
	return &AppError{Kind: Upstream, PublicMsg: publicMsg, Err: err}
}

// Wrap keeps an already-classified error as is and hides anything else
// behind the generic message.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if ae, ok := As(err); ok {
		return ae
	}
	return &AppError{Kind: Internal, PublicMsg: genericMsg, Err: err}
}

func As(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func IsKind(err error, k Kind) bool {
	if ae, ok := As(err); ok {
		return ae.Kind == k
	}
	return false
}

// IsAuth reports whether the error means the current credential no longer
// grants access (expired token or revoked staff rights). Both cases send the
// user back through the login flow.
func IsAuth(err error) bool {
	return IsKind(err, Unauthorized) || IsKind(err, Forbidden)
}

func HTTPStatus(err error) int {
	if ae, ok := As(err); ok {
		switch ae.Kind {
		case Validation:
			return http.StatusBadRequest
		case Unauthorized:
			return http.StatusUnauthorized
		case Forbidden:
			return http.StatusForbidden
		case NotFound:
			return http.StatusNotFound
		case Network, Upstream:
			return http.StatusBadGateway
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

func PublicMessage(err error) string {
	if ae, ok := As(err); ok && ae.PublicMsg != "" {
		return ae.PublicMsg
	}
	return genericMsg
}
