package util

import (
	"fmt"
)

var ErrSessionClosed = fmt.Errorf("session closed")
var ErrUpstreamUnavailable = fmt.Errorf("upstream compositor connection unavailable")
var ErrFrameTooLarge = fmt.Errorf("encoded frame exceeds the 16-bit wire length limit")
var ErrCorruptHeader = fmt.Errorf("frame header length out of range")
var ErrShortBody = fmt.Errorf("frame body shorter than declared argument list")
var ErrSurplusBody = fmt.Errorf("frame body longer than declared argument list")
var ErrNoFd = fmt.Errorf("expected a file descriptor but none is queued")
var ErrBadString = fmt.Errorf("string argument is not NUL-terminated valid UTF-8")
var ErrConnectingToDaemon = fmt.Errorf("could not connect to wrd. Make sure it is running")
var ErrWouldBlock = fmt.Errorf("read would block")
var ErrObjectIDOutOfRange = fmt.Errorf("object id outside the client or server allocation range")
var ErrObjectIDInUse = fmt.Errorf("object id already bound")
var ErrUnknownObject = fmt.Errorf("no object bound at that id")
var ErrUnknownGlobal = fmt.Errorf("no global registered under that name")
