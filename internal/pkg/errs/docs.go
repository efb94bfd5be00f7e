// Package errs provides the typed errors shared by the order domain, the
// application layer and the adapters.
//
// The package includes:
//   - ValueIsRequiredError: a mandatory value is missing
//   - ValueIsInvalidError: a value breaks a business rule
//   - ValueIsOutOfRangeError: a value lies outside an allowed interval
//   - ObjectNotFoundError: a lookup by identifier found nothing
//
// Each type has a sentinel (ErrValueIsRequired, ...), constructors with and
// without a cause, and an Unwrap method returning the sentinel so callers can
// classify errors with errors.Is. IsValidation groups the input errors that the
// HTTP adapter maps to 400 responses.
package errs
