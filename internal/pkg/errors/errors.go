package errors

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalid      = errors.New("invalid")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal")

	// ErrNoTrainingData means the signal store holds no order or interaction
	// at all, so there is no vocabulary to train over. Not retryable without
	// new data.
	ErrNoTrainingData = errors.New("no training data")
	// ErrDataLoad wraps signal store read failures during the full-scan load.
	ErrDataLoad = errors.New("data load failed")
	// ErrTraining wraps numeric failures or timeouts during model fit.
	ErrTraining = errors.New("training failed")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsNoTrainingData(err error) bool {
	return errors.Is(err, ErrNoTrainingData)
}
