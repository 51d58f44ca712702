package service

import "errors"

// Sentinel errors shared by the services. Handlers map them to HTTP codes.
var (
	ErrNotFound         = errors.New("not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrAccountPending   = errors.New("account is waiting for approval")
	ErrForbiddenRole    = errors.New("role change not allowed for caller")
	ErrSelfAction       = errors.New("action not allowed on own account")
	ErrDependencyExists = errors.New("entry is still referenced")
	ErrUnknownTingkatan = errors.New("tingkatan does not exist")
	ErrUnknownJenis     = errors.New("jenis penyakit does not exist")
	ErrUnknownUser      = errors.New("user does not exist")
	ErrEmptyUpdate      = errors.New("no fields to update")
	ErrPublicIDRequired = errors.New("public_id is required")
	ErrFileTooLarge     = errors.New("file too large")
	ErrProviderFailure  = errors.New("media provider failure")
)
