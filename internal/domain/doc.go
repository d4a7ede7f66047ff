// Package domain contains the core business entities of the task service:
// accounts and their roles, todos, manager assignments and comments, plus the
// error kinds every layer uses to report failures.
package domain
