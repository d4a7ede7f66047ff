// Package service contains the application use cases for todos, comments
// and account administration. It orchestrates domain objects and the
// repositories defined in internal/store, applies transactional boundaries
// when an operation spans several stores, and translates store errors into
// domain errors for the API layer.
//
// Authentication lives in service/auth and manager ownership rules in
// service/manager.
package service
