// Copyright 2023 The acquirecloud Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrExist is returned when the object already exists
	ErrExist = fmt.Errorf("already exists")
	// ErrNotExist is returned when the object is not found
	ErrNotExist = fmt.Errorf("not found")
	// ErrInvalid is returned when a configuration or an argument is not acceptable
	ErrInvalid = fmt.Errorf("invalid argument")
	// ErrInternal is returned when something unexpected happened
	ErrInternal = fmt.Errorf("internal error")
	// ErrExhausted is returned when a limit is reached
	ErrExhausted = fmt.Errorf("resource exhausted")
	// ErrClosed is returned when the object is used after it was closed
	ErrClosed = fmt.Errorf("closed")
	// ErrCanceled is returned when the operation was interrupted
	ErrCanceled = fmt.Errorf("canceled")
)

// Is reports whether any error in err's tree matches target. The function is
// the same as errors.Is and is provided to not import the both packages.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target, see errors.As
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors, see errors.Join
func Join(errs ...error) error {
	return errors.Join(errs...)
}
