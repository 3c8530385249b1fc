// Package errors provides the classified error primitives used across typedoc-postbuild.
//
// Errors carry a category (config, validation, filesystem, ...), a severity and a
// structured context. The category drives the process exit code through the CLI adapter.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryFileSystem, "rename failed").
//		WithContext("from", oldPath).
//		WithContext("to", newPath).
//		Build()
package errors
