// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
//
// Services translate the sentinel errors declared here into domain error
// kinds; nothing outside the service layer sees a store error directly.
package store
