// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 LexiSync Authors

// Package validators checks sync API request bodies before the service
// layer acts on them. Validators are injected into services, so the
// rules live in one place and handlers stay free of body inspection.
package validators

import "context"

// Validator validates an arbitrary value. The optional field names
// restrict the check to a subset of the value's rules; with no fields
// given, every rule the validator knows for that type is applied.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
