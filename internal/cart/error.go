package cart

import "errors"

var (
	ErrNotAuthenticated = errors.New("user not authenticated")
	ErrNoCart           = errors.New("no open cart")
	ErrInvalidQuantity  = errors.New("invalid cart quantity")
)
