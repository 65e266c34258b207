package posts

import (
	"errors"

	"github.com/five82/blogfront/internal/api"
	"github.com/five82/blogfront/internal/i18n"
)

// Sentinel validation errors, raised before any request is sent.
var (
	ErrMissingID = errors.New("post id is required")
	ErrInvalidID = errors.New("post id is not a valid UUID")
)

// Kind classifies posts client failures.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindFailed
)

// Op names the client operation that failed.
type Op string

const (
	OpList   Op = "list"
	OpGet    Op = "get"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Error is returned by every Client method. Its message is localized; use Kind,
// Status and errors.Is/As for decisions.
type Error struct {
	Op     Op
	Kind   Kind
	Status int
	ID     string
	Err    error
	locale i18n.Locale
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindValidation:
		if errors.Is(e.Err, ErrInvalidID) {
			return i18n.T(e.locale, i18n.MsgIDInvalid, e.ID)
		}
		return i18n.T(e.locale, i18n.MsgIDRequired)
	case KindNotFound:
		return i18n.T(e.locale, i18n.MsgNotFound)
	}
	return i18n.T(e.locale, failureKey(e.Op), causeText(e.Err))
}

func (e *Error) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a not-found failure from this package.
func IsNotFound(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == KindNotFound
}

// IsValidation reports whether err was raised before any request was made.
func IsValidation(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == KindValidation
}

func failureKey(op Op) string {
	switch op {
	case OpList:
		return i18n.MsgListFailed
	case OpCreate:
		return i18n.MsgCreateFailed
	case OpUpdate:
		return i18n.MsgUpdateFailed
	case OpDelete:
		return i18n.MsgDeleteFailed
	default:
		return i18n.MsgGetFailed
	}
}

func causeText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func (c *Client) wrap(op Op, id string, err *api.Error) *Error {
	kind := KindFailed
	// 404 means "post not found" only for single-post lookups.
	if err.NotFound() && op != OpList && op != OpCreate {
		kind = KindNotFound
	}
	return &Error{Op: op, Kind: kind, Status: err.Status, ID: id, Err: err, locale: c.locale}
}

func (c *Client) invalid(op Op, id string, cause error) *Error {
	return &Error{Op: op, Kind: KindValidation, ID: id, Err: cause, locale: c.locale}
}
