// Package handler is the first layer. The first entry point
// for business logic after the router or the Lambda runtime.
//
// It decodes request bodies, handles input validation using the
// validation package, and calls the appropriate service layer.
// Every outcome is rendered as an envelope, so HTTP and Lambda
// callers see the same status, headers and body.
package handler
