package domain

import (
	"errors"
	"fmt"
)

// Erreurs du domaine.
var (
	ErrTransport              = errors.New("backend injoignable")
	ErrMalformedResponse      = errors.New("réponse du backend mal formée")
	ErrIncompleteRegistration = errors.New("l'activité et l'email sont requis")
)

// Codes d'erreur, utilisés comme suffixes de clés i18n et labels de métriques.
const (
	CodeTransport              = "transport"
	CodeMalformedResponse      = "malformed_response"
	CodeIncompleteRegistration = "incomplete_registration"
	CodeRejected               = "rejected"
	CodeUnknown                = "unknown"
)

// TransportError signale une requête restée sans réponse.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is fait correspondre tout TransportError à ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// RejectedError est une réponse non-2xx du backend. Detail est le texte fourni
// par le serveur, vide si le corps n'en contenait pas.
type RejectedError struct {
	Status int
	Detail string
}

func (e *RejectedError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("refusé avec le statut %d", e.Status)
	}
	return fmt.Sprintf("refusé avec le statut %d: %s", e.Status, e.Detail)
}

// Code renvoie le code stable de err, ou "" pour nil.
func Code(err error) string {
	if err == nil {
		return ""
	}
	var rejected *RejectedError
	switch {
	case errors.As(err, &rejected):
		return CodeRejected
	case errors.Is(err, ErrTransport):
		return CodeTransport
	case errors.Is(err, ErrMalformedResponse):
		return CodeMalformedResponse
	case errors.Is(err, ErrIncompleteRegistration):
		return CodeIncompleteRegistration
	default:
		return CodeUnknown
	}
}
