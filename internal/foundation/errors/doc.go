// Package errors provides the classified error primitives used across mdblocks.
//
// A ClassifiedError carries a category, a severity, a retry strategy and a
// free-form context map. Errors are built through a fluent builder:
//
//	err := errors.NewError(errors.CategoryConfig, "unknown generator reference").
//		WithSeverity(errors.SeverityFatal).
//		WithContext("reference", ref).
//		Build()
//
// The CLI adapter maps categories to process exit codes.
package errors
