package binder

import "errors"

// Common binding errors
var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrInvalidJSON          = errors.New("invalid JSON")
	ErrInvalidQuery         = errors.New("invalid query parameter")
	ErrInvalidPath          = errors.New("invalid path parameter")
	ErrMissingContentType   = errors.New("missing content type")

	// ErrBinderNotApplicable signals that a binder does not apply to the
	// request (e.g. a JSON binder on a GET without a body). Handlers skip
	// such binders instead of failing the request.
	ErrBinderNotApplicable = errors.New("binder not applicable to this request")
)
