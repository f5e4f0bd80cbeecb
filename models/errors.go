package models

// Client-facing error kinds, mapped to HTTP statuses by the helper package.

type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string { return e.Message }

type ErrorBadRequest struct {
	Message string
}

func (e ErrorBadRequest) Error() string { return e.Message }

type ErrorUnauthorized struct {
	Message string
}

func (e ErrorUnauthorized) Error() string { return e.Message }

type ErrorForbidden struct {
	Message string
}

func (e ErrorForbidden) Error() string { return e.Message }

type ErrorConflict struct {
	Message string
}

func (e ErrorConflict) Error() string { return e.Message }
