package apperr

import (
	"errors"
	"fmt"
)

// Kind mengelompokkan error aplikasi supaya handler bisa mapping ke status
// code tanpa string matching.
type Kind string

const (
	KindInvalid      Kind = "INVALID"       // input caller salah (bukan kursi)
	KindInvalidSeat  Kind = "INVALID_SEAT"  // kursi tak ada di layout, atau set kursi kosong
	KindSeatConflict Kind = "SEAT_CONFLICT" // kursi sudah diambil booking lain
	KindNotFound     Kind = "NOT_FOUND"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindConflict     Kind = "CONFLICT"    // state transition ilegal (mis. cancel dua kali)
	KindTransient    Kind = "TRANSIENT"   // kegagalan storage, aman retry seluruh operasi
	KindConsistency  Kind = "CONSISTENCY" // data rusak, bug di tempat lain, jangan retry
	KindInternal     Kind = "INTERNAL"
)

// Error adalah error aplikasi ber-kind. Seats terisi hanya untuk
// KindSeatConflict / KindInvalidSeat, berisi label kursi yang bermasalah.
type Error struct {
	Kind    Kind
	Message string
	Seats   []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf mengembalikan kind dari error, atau KindInternal kalau bukan *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind cek apakah error punya kind tertentu.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// SeatsOf mengembalikan label kursi yang terlampir di error, kalau ada.
func SeatsOf(err error) []string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Seats
	}
	return nil
}

func Invalid(message string) *Error {
	return &Error{Kind: KindInvalid, Message: message}
}

func InvalidSeat(message string, seats ...string) *Error {
	return &Error{Kind: KindInvalidSeat, Message: message, Seats: seats}
}

func SeatConflict(message string, seats ...string) *Error {
	return &Error{Kind: KindSeatConflict, Message: message, Seats: seats}
}

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Transient(message string, err error) *Error {
	return &Error{Kind: KindTransient, Message: message, Err: err}
}

func Consistency(message string) *Error {
	return &Error{Kind: KindConsistency, Message: message}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}
