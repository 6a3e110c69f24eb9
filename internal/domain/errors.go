package domain

import "errors"

// Sentinel errors for feed operations
var (
	// ErrUnauthorized indicates the API rejected the access key
	ErrUnauthorized = errors.New("access key was rejected")

	// ErrRemoteService indicates the API answered with a non-auth failure
	ErrRemoteService = errors.New("remote service error")

	// ErrConnectivity indicates no response could be obtained
	ErrConnectivity = errors.New("remote service is unreachable")

	// ErrStorage indicates the local image store failed
	ErrStorage = errors.New("image store error")
)

// User-facing failure messages
const (
	MsgUnauthorized  = "Check your API Key"
	MsgRemoteService = "Something went wrong!"
	MsgConnectivity  = "Check your internet connection!"
)

// FailureMessage maps an error to the message shown to the user.
// Anything that is not an auth or connectivity problem is a generic failure,
// storage errors included.
func FailureMessage(err error) string {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return MsgUnauthorized
	case errors.Is(err, ErrConnectivity):
		return MsgConnectivity
	default:
		return MsgRemoteService
	}
}
