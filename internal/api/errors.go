package api

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"syscall"
)

// ErrorType categorizes a failed backend call.
type ErrorType int

const (
	// ErrTypeNetwork indicates the request failed before a response arrived
	// (offline, refused connection, timeout).
	ErrTypeNetwork ErrorType = iota
	// ErrTypeAuth indicates the session token was missing, expired or rejected.
	ErrTypeAuth
	// ErrTypeForbidden indicates the authenticated role may not perform the call.
	ErrTypeForbidden
	// ErrTypeNotFound indicates the requested resource does not exist.
	ErrTypeNotFound
	// ErrTypeServer indicates the backend rejected the request with an error
	// payload (validation or business-rule violation).
	ErrTypeServer
	// ErrTypeParse indicates a malformed response body.
	ErrTypeParse
	// ErrTypeTimeout indicates the request deadline elapsed.
	ErrTypeTimeout
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeAuth:
		return "Authentication Error"
	case ErrTypeForbidden:
		return "Forbidden"
	case ErrTypeNotFound:
		return "Not Found"
	case ErrTypeServer:
		return "Server Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeTimeout:
		return "Timeout"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// ClientError is the error returned by every backend call. The Message of a
// server-rejected request is the backend's own message, verbatim, when the
// error payload carried one.
type ClientError struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Err        error
	Retryable  bool
}

// Error implements the error interface
func (e *ClientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ClientError) Unwrap() error {
	return e.Err
}

// genericFailureMessage is shown when the backend gave no usable message.
const genericFailureMessage = "Si è verificato un errore, riprova più tardi"

// classifyTransportError maps a transport failure to a typed error.
func classifyTransportError(err error) *ClientError {
	if err == nil {
		return nil
	}

	if os.IsTimeout(err) {
		return &ClientError{
			Type:      ErrTypeTimeout,
			Message:   "il server non ha risposto in tempo",
			Err:       err,
			Retryable: true,
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &ClientError{
			Type:      ErrTypeNetwork,
			Message:   fmt.Sprintf("impossibile risolvere %s", dnsErr.Name),
			Err:       err,
			Retryable: false,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return &ClientError{
			Type:      ErrTypeNetwork,
			Message:   "connessione rifiutata dal server",
			Err:       err,
			Retryable: true,
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return classifyTransportError(urlErr.Err)
	}

	return &ClientError{
		Type:      ErrTypeNetwork,
		Message:   "errore di rete",
		Err:       err,
		Retryable: true,
	}
}

// newStatusError maps a non-2xx response to a typed error. serverMessage is
// the message extracted from the error payload, possibly empty.
func newStatusError(statusCode int, serverMessage string) *ClientError {
	msg := serverMessage
	if msg == "" {
		msg = genericFailureMessage
	}

	switch {
	case statusCode == http.StatusUnauthorized:
		return &ClientError{
			Type:       ErrTypeAuth,
			Message:    "sessione scaduta o non valida",
			StatusCode: statusCode,
			Retryable:  false,
		}
	case statusCode == http.StatusForbidden:
		return &ClientError{
			Type:       ErrTypeForbidden,
			Message:    "operazione non consentita per il tuo ruolo",
			StatusCode: statusCode,
			Retryable:  false,
		}
	case statusCode == http.StatusNotFound:
		return &ClientError{
			Type:       ErrTypeNotFound,
			Message:    "risorsa non trovata",
			StatusCode: statusCode,
			Retryable:  false,
		}
	default:
		return &ClientError{
			Type:       ErrTypeServer,
			Message:    msg,
			StatusCode: statusCode,
			Retryable:  statusCode >= 500,
		}
	}
}

// newParseError creates a parsing error
func newParseError(message string, err error) *ClientError {
	return &ClientError{
		Type:      ErrTypeParse,
		Message:   message,
		Err:       err,
		Retryable: false,
	}
}

// IsNetworkError checks if an error is a transport-level failure
func IsNetworkError(err error) bool {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Type == ErrTypeNetwork || ce.Type == ErrTypeTimeout
	}
	return false
}

// IsAuthError checks if an error means the session is unusable
func IsAuthError(err error) bool {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Type == ErrTypeAuth
	}
	return false
}

// IsNotFound checks if an error is a missing-resource response
func IsNotFound(err error) bool {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Type == ErrTypeNotFound
	}
	return false
}

// IsRetryable checks if re-issuing the same request may succeed
func IsRetryable(err error) bool {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Retryable
	}
	return false
}

// ShortMessage returns the concise message shown in toasts and result boxes.
func ShortMessage(err error) string {
	var ce *ClientError
	if !errors.As(err, &ce) {
		return genericFailureMessage
	}

	switch ce.Type {
	case ErrTypeNetwork, ErrTypeTimeout:
		return "Errore di rete: controlla la connessione e riprova"
	case ErrTypeAuth:
		return "Sessione scaduta: effettua di nuovo il login"
	case ErrTypeForbidden:
		return "Non hai i permessi per questa operazione"
	case ErrTypeNotFound:
		return "Elemento non trovato"
	default:
		return ce.Message
	}
}
