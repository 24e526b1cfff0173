package domain

import "errors"

// Kind classifies an Error. The set is closed; transports map each kind to a status.
type Kind uint8

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindConflict
	KindNotFound
	KindDatabase
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindDatabase:
		return "database"
	default:
		return "internal"
	}
}

// Error is the only error type services return to transports.
// Message is safe to show to clients for every kind except KindDatabase and KindInternal.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

var (
	ErrUserNotFound = &Error{Kind: KindNotFound, Message: "user not found"}
	ErrEmailTaken   = &Error{Kind: KindConflict, Message: "User with this email already exists"}
	ErrItemNotFound = &Error{Kind: KindNotFound, Message: "Grocery item not found"}

	ErrInvalidCredentials   = &Error{Kind: KindAuthentication, Message: "Invalid email or password"}
	ErrAuthenticationFailed = &Error{Kind: KindAuthentication, Message: "authentication failed"}
	ErrTokenExpired         = &Error{Kind: KindAuthentication, Message: "token expired"}
	ErrTokenInvalid         = &Error{Kind: KindAuthentication, Message: "token invalid"}
	ErrAuthHeaderMissing    = &Error{Kind: KindAuthentication, Message: "authorization header missing"}
	ErrAuthHeaderMalformed  = &Error{Kind: KindAuthentication, Message: "authorization header malformed"}
)

// NewValidationError returns a KindValidation error with a client-facing message.
func NewValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NewDatabaseError wraps an unexpected storage failure. op names the failed operation.
func NewDatabaseError(op string, err error) *Error {
	return &Error{Kind: KindDatabase, Message: op, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain, KindInternal if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the client-facing message of the first *Error in err's chain.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
