package errors

import "errors"

// Business errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções devem estar em internal/infrastructure/i18n/locales/*.json
var (
	ErrUserNotFound           = errors.New("error.user_not_found")
	ErrPostNotFound           = errors.New("error.post_not_found")
	ErrEmailAlreadyExists     = errors.New("error.email_already_exists")
	ErrInvalidCredentials     = errors.New("error.invalid_credentials")
	ErrUnauthorized           = errors.New("error.unauthorized")
	ErrNotPostOwner           = errors.New("error.not_post_owner")
	ErrInvalidCurrentPassword = errors.New("error.invalid_current_password")
	ErrPasswordMismatch       = errors.New("error.password_mismatch")
)

// Validation errors
var (
	ErrMissingFields       = errors.New("error.missing_fields")
	ErrMissingImage        = errors.New("error.missing_image")
	ErrImageTooLarge       = errors.New("error.image_too_large")
	ErrInvalidCategory     = errors.New("error.invalid_category")
	ErrDescriptionTooShort = errors.New("error.description_too_short")
	ErrPasswordTooShort    = errors.New("error.password_too_short")
	ErrInvalidEmail        = errors.New("error.invalid_email")
)

// Collaborator errors
var (
	ErrUploadFailed     = errors.New("error.upload_failed")
	ErrBlobDeleteFailed = errors.New("error.blob_delete_failed")
	ErrPersistFailed    = errors.New("error.persist_failed")
)

// Kind agrupa os erros por natureza, usado para escolher o status HTTP
type Kind string

const (
	KindValidationFailed Kind = "validation_failed"
	KindNotFound         Kind = "not_found"
	KindForbidden        Kind = "forbidden"
	KindConflict         Kind = "conflict"
	KindUnauthorized     Kind = "unauthorized"
	KindPasswordMismatch Kind = "password_mismatch"
	KindUploadFailed     Kind = "upload_failed"
	KindPersistFailed    Kind = "persist_failed"
	KindInternal         Kind = "internal"
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrMissingFields, KindValidationFailed},
	{ErrMissingImage, KindValidationFailed},
	{ErrImageTooLarge, KindValidationFailed},
	{ErrInvalidCategory, KindValidationFailed},
	{ErrDescriptionTooShort, KindValidationFailed},
	{ErrPasswordTooShort, KindValidationFailed},
	{ErrInvalidEmail, KindValidationFailed},
	{ErrUserNotFound, KindNotFound},
	{ErrPostNotFound, KindNotFound},
	{ErrNotPostOwner, KindForbidden},
	{ErrInvalidCurrentPassword, KindForbidden},
	{ErrEmailAlreadyExists, KindConflict},
	{ErrUnauthorized, KindUnauthorized},
	{ErrInvalidCredentials, KindUnauthorized},
	{ErrPasswordMismatch, KindPasswordMismatch},
	{ErrUploadFailed, KindUploadFailed},
	{ErrBlobDeleteFailed, KindUploadFailed},
	{ErrPersistFailed, KindPersistFailed},
}

// KindOf classifica um erro (possivelmente encapsulado).
// Erros desconhecidos são KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// Code retorna o erro sentinela (message ID) contido em err, se houver
func Code(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.err
		}
	}
	return nil
}

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base virá de configuração (API_BASE_URL)
//
//nolint:misspell
const (
	ProblemTypeValidation   = "/problems/validation-error"
	ProblemTypeNotFound     = "/problems/not-found"
	ProblemTypeConflict     = "/problems/conflict"
	ProblemTypeUnauthorized = "/problems/unauthorized"
	ProblemTypeForbidden    = "/problems/forbidden"
	ProblemTypeInternal     = "/problems/internal-error"
	ProblemTypeBadRequest   = "/problems/bad-request"
	ProblemTypeUpstream     = "/problems/upstream-error"
	ProblemTypePassword     = "/problems/password-mismatch"
)

// DomainError associa um erro sentinela (Code) à causa técnica (Err).
// errors.Is casa tanto com o sentinela quanto com a causa.
type DomainError struct {
	Code error
	Err  error
}

// Wrap encapsula a causa com um código de erro de domínio
func Wrap(code, cause error) error {
	return &DomainError{Code: code, Err: cause}
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Code.Error() + ": " + e.Err.Error()
	}
	return e.Code.Error()
}

func (e *DomainError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Code}
	}
	return []error{e.Code, e.Err}
}
