package waitlist

import "errors"

// ErrInvalidEmail is returned by Submit when the normalized email fails
// validation. The API layer maps it to a 400 with a fixed message.
var ErrInvalidEmail = errors.New("invalid email address")
