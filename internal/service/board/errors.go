package board

import "errors"

var (
	ErrNilClock  = errors.New("board: nil clock")
	ErrNilStore  = errors.New("board: nil store")
	ErrNilLogger = errors.New("board: nil logger")

	ErrDeliveryNotFound   = errors.New("delivery not found")
	ErrSameStatus         = errors.New("delivery already has this status")
	ErrTransitionInFlight = errors.New("delivery transition already in flight")
	ErrPersistFailed      = errors.New("persist delivery transition")
)
