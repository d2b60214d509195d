// Package errs define custom error types and utilities.
//
// Its purpose is to create specific error structures..
// (e.g. HTTPError for API responses)..
// to ensure the client receive meaningful and consistent..
// error messages, while the details stay in the logs.
package errs
