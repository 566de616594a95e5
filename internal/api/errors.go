package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	MsgUnavailable   = "network error or server unavailable"
	MsgLoginRequired = "please log in first"
	msgFieldsHeader  = "please check the following fields:"
)

// AuthError is returned for any 401. By the time a caller sees it the local
// session has already been cleared and the login redirect signalled.
type AuthError struct {
	LoginURL string
}

func (e *AuthError) Error() string {
	return "unauthorized: login required"
}

// FieldError is a server-side validation failure keyed by field name, in the
// order the server reported them.
type FieldError struct {
	Status int
	Fields []FieldMessages
}

type FieldMessages struct {
	Field    string
	Messages []string
}

func (e *FieldError) Error() string {
	var b strings.Builder
	b.WriteString(msgFieldsHeader)
	for _, f := range e.Fields {
		fmt.Fprintf(&b, "\n%s: %s", f.Field, strings.Join(f.Messages, ", "))
	}
	return b.String()
}

// Messages returns the messages reported for field, if any.
func (e *FieldError) Messages(field string) []string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Messages
		}
	}
	return nil
}

// GenericError covers every other failure. Message is empty when the server
// sent nothing usable; Err is set when no response arrived at all.
type GenericError struct {
	Status  int
	Message string
	Err     error
}

func (e *GenericError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", MsgUnavailable, e.Err)
	case e.Message != "":
		return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
	default:
		return fmt.Sprintf("server error (%d)", e.Status)
	}
}

func (e *GenericError) Unwrap() error {
	return e.Err
}

// Unavailable reports whether the request never got a response or the
// response carried nothing readable.
func (e *GenericError) Unavailable() bool {
	return e.Err != nil || e.Message == ""
}

// UserMessage renders err for display. fallback is used for errors that did
// not come from the backend.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var um interface{ UserMessage() string }
	if errors.As(err, &um) {
		return um.UserMessage()
	}
	var ae *AuthError
	if errors.As(err, &ae) {
		return MsgLoginRequired
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Error()
	}
	var ge *GenericError
	if errors.As(err, &ge) {
		switch {
		case ge.Unavailable():
			return MsgUnavailable
		case ge.Message != "":
			return ge.Message
		}
	}
	return fallback
}

// decodeError classifies a non-2xx, non-401 response body.
func decodeError(status int, body []byte) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return &GenericError{Status: status}
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return &GenericError{Status: status}
	}
	for _, key := range []string{"detail", "message", "error"} {
		raw, ok := probe[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return &GenericError{Status: status, Message: s}
		}
	}

	fields, err := orderedFields(body)
	if err != nil || len(fields) == 0 {
		return &GenericError{Status: status}
	}
	return &FieldError{Status: status, Fields: fields}
}

// orderedFields walks the top-level object so keys keep the server's order.
func orderedFields(body []byte) ([]FieldMessages, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object")
	}

	var out []FieldMessages
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		out = append(out, FieldMessages{Field: key, Messages: messagesOf(raw)})
	}
	return out, nil
}

func messagesOf(raw json.RawMessage) []string {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		return []string{one}
	}
	var mixed []any
	if err := json.Unmarshal(raw, &mixed); err == nil {
		out := make([]string, 0, len(mixed))
		for _, m := range mixed {
			out = append(out, fmt.Sprint(m))
		}
		return out
	}
	return []string{string(raw)}
}

func isUnauthorized(status int) bool {
	return status == http.StatusUnauthorized
}
