// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwell-cms/inkwell/pkg/query"
)

/*
TestStringSlice covers comma-separated query value parsing.
*/
func TestStringSlice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "golang", []string{"golang"}},
		{"multiple", "golang,testing", []string{"golang", "testing"}},
		{"trims_whitespace", " golang , testing ", []string{"golang", "testing"}},
		{"drops_empty_entries", "golang,,testing,", []string{"golang", "testing"}},
		{"only_separators", ", ,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, query.StringSlice(tt.input))
		})
	}
}
