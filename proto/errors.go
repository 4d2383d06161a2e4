package proto

import "fmt"

// Error codes carried by wl_display.error (§6 "Error event"). Per-
// interface errors reuse this same event but define additional codes
// starting above these three, the way xdg_wm_base and xdg_surface do
// in the upstream protocol XML.
const (
	ErrorInvalidObject uint32 = 0
	ErrorInvalidMethod uint32 = 1
	ErrorNoMemory      uint32 = 2
)

// ProtocolError is a non-fatal violation that must be converted into
// a wl_display.error event rather than torn down the session (§7
// tier 2). ObjectID is the object the error concerns — often but not
// always the sender of the offending request.
type ProtocolError struct {
	ObjectID uint32
	Code     uint32
	Message  string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error on object %d (code %d): %s", e.ObjectID, e.Code, e.Message)
}

func InvalidObject(objectID uint32, format string, a ...interface{}) *ProtocolError {
	return &ProtocolError{ObjectID: objectID, Code: ErrorInvalidObject, Message: fmt.Sprintf(format, a...)}
}

func InvalidMethod(objectID uint32, format string, a ...interface{}) *ProtocolError {
	return &ProtocolError{ObjectID: objectID, Code: ErrorInvalidMethod, Message: fmt.Sprintf(format, a...)}
}
