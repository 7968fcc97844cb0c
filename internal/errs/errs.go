package errs

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

type Kind uint8

const (
	KindOther             Kind = iota // Unclassified error
	KindSession                       // Wireless service handle could not be opened
	KindEnumeration                   // Platform interface/network enumeration failed
	KindInterfaceNotFound             // Configured interface is not present
	KindNetworkNotFound               // Configured SSID is not visible
	KindFormat                        // Identifier conversion failed
	KindInvalid                       // Validation errors (User input)
)

func (k Kind) String() string {
	switch k {
	case KindSession:
		return "session error"
	case KindEnumeration:
		return "enumeration error"
	case KindInterfaceNotFound:
		return "interface not found"
	case KindNetworkNotFound:
		return "network not found"
	case KindFormat:
		return "format error"
	case KindInvalid:
		return "invalid input"
	}
	return "other error"
}

type Op string

type Error struct {
	Op      Op     // Where did it happen?
	Kind    Kind   // What category is it?
	Err     error  // The underlying error (the root cause)
	Message string // Human-readable message for the user/frontend
}

func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch arg := arg.(type) {
		case Op:
			e.Op = arg
		case Kind:
			e.Kind = arg
		case *Error:
			copy := *arg
			e.Err = &copy
		case error:
			e.Err = arg
		case string:
			e.Message = arg
		}
	}

	// Inherit the kind of a wrapped error so callers only classify once.
	if e.Kind == KindOther {
		var inner *Error
		if errors.As(e.Err, &inner) {
			e.Kind = inner.Kind
		}
	}
	return e
}

func (e *Error) Error() string {
	var b strings.Builder

	if e.Op != "" {
		b.WriteString(string(e.Op))
	}

	if e.Message != "" {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(e.Message)
	}

	if e.Err != nil {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the first non-Other kind found in the wrap chain.
func KindOf(err error) Kind {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return KindOther
		}
		if e.Kind != KindOther {
			return e.Kind
		}
		err = e.Err
	}
	return KindOther
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalid, KindFormat:
		return http.StatusBadRequest
	case KindInterfaceNotFound, KindNetworkNotFound:
		return http.StatusNotFound
	case KindSession:
		return http.StatusServiceUnavailable
	case KindEnumeration:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func HTTPResponse(w http.ResponseWriter, err error) {
	log.Printf("[API ERROR] %v", err)

	code := HTTPStatus(err)
	msg := "Internal Server Error"

	var e *Error
	if errors.As(err, &e) {
		if e.Message != "" {
			msg = e.Message
		} else if code != http.StatusInternalServerError && e.Err != nil {
			msg = e.Err.Error()
		} else if code != http.StatusInternalServerError {
			msg = e.Kind.String()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"error": msg,
		"kind":  KindOf(err).String(),
	})
}
