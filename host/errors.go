package host

import "errors"

// Sentinel errors for the execution contract.
var (
	ErrNoBinaryData         = errors.New("item has no binary data")
	ErrBinaryPropertyAbsent = errors.New("binary property not found on item")
	ErrCredentialNotFound   = errors.New("credential not configured")
	ErrItemIndexOutOfRange  = errors.New("item index out of range")
)
