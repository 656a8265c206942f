package resource

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nonEmpty(v any) bool {
	s, ok := v.(string)
	return ok && s != ""
}

func TestValidateStructure(t *testing.T) {
	tests := []struct {
		name      string
		directive Directive
		conds     []Condition
		wantPass  bool
		wantField string
	}{
		{
			name:      "no conditions",
			directive: CreateStructure,
			wantPass:  true,
		},
		{
			name:      "value passes",
			directive: CreateStructure,
			conds:     []Condition{{Field: "title", Value: "x", Check: nonEmpty}},
			wantPass:  true,
		},
		{
			name:      "value fails",
			directive: UpdateStructure,
			conds:     []Condition{{Field: "title", Value: "", Check: nonEmpty}},
			wantField: "title",
		},
		{
			name:      "null fails on create",
			directive: CreateStructure,
			conds:     []Condition{{Field: "title", Value: nil, Check: nonEmpty}},
			wantField: "title",
		},
		{
			name:      "null passes on update",
			directive: UpdateStructure,
			conds:     []Condition{{Field: "title", Value: nil, Check: nonEmpty}},
			wantPass:  true,
		},
		{
			name:      "null passes with option",
			directive: CreateStructure,
			conds:     []Condition{{Field: "title", Value: nil, Check: nonEmpty, Options: NullPassesValidation}},
			wantPass:  true,
		},
		{
			name:      "zero timestamp is null",
			directive: CreateStructure,
			conds:     []Condition{{Field: KeyCreationDate, Value: Timestamp(0), Check: Is(true)}},
			wantField: KeyCreationDate,
		},
		{
			name:      "first failure wins",
			directive: CreateStructure,
			conds: []Condition{
				{Field: "a", Value: 1, Check: Is(true)},
				{Field: "b", Value: 1, Check: Is(false)},
				{Field: "c", Value: nil},
			},
			wantField: "b",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateStructure(tt.directive, tt.conds...)
			assert.Equal(t, tt.wantPass, res.Passed)
			if tt.wantPass {
				assert.Nil(t, res.Condition)
				assert.NoError(t, res.Err())
				return
			}
			require.NotNil(t, res.Condition)
			assert.Equal(t, tt.wantField, res.Condition.Field)
		})
	}
}

func TestValidationResult_Err(t *testing.T) {
	res := Base{}.Validate(CreateStructure, Condition{Field: "title", Value: "", Check: nonEmpty, Failure: "title_empty"})

	err := res.Err()
	require.Error(t, err)
	assert.True(t, IsValidationErr(err))
	assert.EqualError(t, err, "structure validation failed on title: title_empty")

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "title_empty", verr.Failure)
}
