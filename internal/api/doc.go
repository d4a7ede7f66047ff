// Package api handles incoming HTTP requests, request validation, and
// response formatting. It adapts HTTP to the account, todo, manager and
// comment services and maps their errors to status codes.
package api
