// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

package post

import (
	"fmt"

	"github.com/inkwell-cms/inkwell/internal/platform/apperr"
)

// Canonical status literals as stored and transmitted.
const (
	statusDraft     = "draft"
	statusPublished = "published"
)

// Status is the two-state publish lifecycle of a post.
//
// Only [Draft], [Published] and [ParseStatus] can construct a valid value;
// the zero value is invalid and rejected by the entity factories.
type Status struct {
	value string
}

// Draft returns the draft status.
func Draft() Status { return Status{value: statusDraft} }

// Published returns the published status.
func Published() Status { return Status{value: statusPublished} }

// ParseStatus validates an arbitrary string into a [Status].
//
// Anything other than the two literals fails with POST_STATUS_INVALID, naming
// the offending value and the valid set.
func ParseStatus(value string) (Status, error) {
	switch value {
	case statusDraft:
		return Draft(), nil
	case statusPublished:
		return Published(), nil
	}
	return Status{}, apperr.Invalid("POST_STATUS_INVALID",
		fmt.Sprintf("Invalid post status %q, must be one of: %s, %s", value, statusDraft, statusPublished))
}

// IsDraft reports whether the status is draft.
func (s Status) IsDraft() bool { return s.value == statusDraft }

// IsPublished reports whether the status is published.
func (s Status) IsPublished() bool { return s.value == statusPublished }

// String returns the canonical literal.
func (s Status) String() string { return s.value }

// Equals reports structural equality.
func (s Status) Equals(other Status) bool { return s.value == other.value }
