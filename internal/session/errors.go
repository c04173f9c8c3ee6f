// internal/session/errors.go
package session

import (
	stderrors "errors"

	"gigboard/internal/browse"
	"gigboard/internal/common/errors"
	"gigboard/internal/creator"
	"gigboard/internal/models"
)

// FlowError converts the creator and browse sentinels to StandardErrors.
// id is the board or session the operation ran against. Unknown errors are
// returned unchanged.
func FlowError(id string, err error) error {
	if err == nil {
		return nil
	}

	var vErr *creator.ValidationError
	switch {
	case stderrors.As(err, &vErr):
		failed := vErr.Errors.Failed()
		fields := make([]string, len(failed))
		for i, f := range failed {
			fields[i] = string(f)
		}
		return errors.NewJobFormValidationFailedError(fields).
			WithMetadata("formErrors", vErr.Errors).
			WithMetadata("notifications", []models.Notification{creator.NotifyValidationFailed})
	case stderrors.Is(err, creator.ErrNoPendingConfirmation):
		return errors.NewConfirmationNotPendingError(id)
	case stderrors.Is(err, browse.ErrNotPendingAck):
		return errors.NewDisclaimerNotPendingError(id)
	case stderrors.Is(err, creator.ErrInvalidView), stderrors.Is(err, browse.ErrInvalidView):
		return errors.NewInvalidViewError(err.Error())
	case stderrors.Is(err, creator.ErrUnknownField):
		return errors.NewInvalidInputError(err.Error())
	}
	return err
}
