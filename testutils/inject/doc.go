// Package inject provides dependency injected structures for mocking the guard's collaborators.
package inject
