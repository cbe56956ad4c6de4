package checkout

import (
	"errors"

	"pos-terminal/internal/pkg/errs"
)

var (
	ErrEmptyCart     = errs.Mark(errors.New("cart is empty"), errs.ErrDomainValidation)
	ErrInvalidAmount = errs.Mark(errors.New("amount paid must be a non-negative number"), errs.ErrDomainValidation)

	ErrCheckoutInProgress = errs.Mark(errors.New("checkout is already being processed"), errs.ErrCheckoutConflict)
	ErrNotReviewing       = errs.Mark(errors.New("no checkout is under review"), errs.ErrCheckoutConflict)
	ErrCheckoutOpen       = errs.Mark(errors.New("close the payment dialog before editing the cart"), errs.ErrCheckoutConflict)
	ErrNotSubmitting      = errs.Mark(errors.New("no checkout is being submitted"), errs.ErrCheckoutConflict)
)
