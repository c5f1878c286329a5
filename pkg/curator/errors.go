package curator

import (
	"errors"

	"github.com/goliatone/go-curatorform/pkg/formstate"
)

var (
	ErrStateRequired       = errors.New("curator: form state is required")
	ErrSubmitRequired      = errors.New("curator: submit handler is required")
	ErrUnknownPlatform     = errors.New("curator: unknown social platform")
	ErrPlatformUnavailable = errors.New("curator: social platform already linked")
	ErrPlatformMismatch    = errors.New("curator: social row does not match platform")
	ErrRemoveDenied        = errors.New("curator: first playlist cannot be removed")
	ErrUnknownAction       = errors.New("curator: unknown form action")
	ErrIndexOutOfRange     = formstate.ErrIndexOutOfRange
)
