package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func newTestValidator() *Validator {
	return NewValidator(DefaultVocabulary(), layoutSet{"42": true})
}

func TestValidateForCreate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*CreateRequest)
		attr     Attribute
		contains string
	}{
		{name: "valid"},
		{
			name:     "missing layout",
			mutate:   func(r *CreateRequest) { r.LayoutID = nil },
			attr:     AttrLayoutID,
			contains: "is required to create an extract type",
		},
		{
			name:     "unknown layout",
			mutate:   func(r *CreateRequest) { r.LayoutID = Ptr("7") },
			attr:     AttrLayoutID,
			contains: "does not reference an existing layout",
		},
		{
			name:     "missing delimiter",
			mutate:   func(r *CreateRequest) { r.Delimiter = nil },
			attr:     AttrDelimiter,
			contains: "delimiter cannot be null",
		},
		{
			name:     "abbreviated delimiter",
			mutate:   func(r *CreateRequest) { r.Delimiter = Ptr("tab") },
			attr:     AttrDelimiter,
			contains: `delimiter value is invalid: "tab". Values are: "vertical bar sep", "tab sep", "comma sep", "parquet"`,
		},
		{
			name:     "bad extension",
			mutate:   func(r *CreateRequest) { r.Extension = Ptr("xlsx") },
			attr:     AttrExtension,
			contains: `extension value is invalid: "xlsx"`,
		},
		{
			name:   "free text is unconstrained",
			mutate: func(r *CreateRequest) { r.Observation = "anything, really" },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			if tt.mutate != nil {
				tt.mutate(&req)
			}
			err := newTestValidator().ValidateForCreate(context.Background(), req)
			if tt.contains == "" {
				require.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tt.attr, ve.Attribute)
			require.Contains(t, err.Error(), tt.contains)
			require.True(t, IsValidation(err))
		})
	}
}

func TestValidateForCreate_LayoutErrorIsWrapped(t *testing.T) {
	req := validRequest()
	req.LayoutID = Ptr("7")

	err := newTestValidator().ValidateForCreate(context.Background(), req)
	require.ErrorIs(t, err, ErrLayoutNotFound)
}

func TestValidateForCreate_LayoutCheckedBeforeValues(t *testing.T) {
	req := validRequest()
	req.LayoutID = Ptr("7")
	req.Delimiter = Ptr("tab")

	err := newTestValidator().ValidateForCreate(context.Background(), req)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, AttrLayoutID, ve.Attribute)
}

func TestValidateForQuery(t *testing.T) {
	v := newTestValidator()
	ctx := context.Background()

	require.NoError(t, v.ValidateForQuery(ctx, QueryFilter{}), "no filters is valid")
	require.NoError(t, v.ValidateForQuery(ctx, QueryFilter{Delimiter: Ptr(DelimiterTab)}))
	require.NoError(t, v.ValidateForQuery(ctx, QueryFilter{LayoutID: Ptr("42"), Example: Ptr("free")}))

	err := v.ValidateForQuery(ctx, QueryFilter{LayoutID: Ptr("7")})
	require.ErrorIs(t, err, ErrLayoutNotFound)

	err = v.ValidateForQuery(ctx, QueryFilter{ArchiveType: Ptr("rar")})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, AttrArchiveType, ve.Attribute)
	require.Equal(t, []string{"no", "zip", "gz"}, ve.Allowed)
}

func TestValidator_RejectsAnyOutOfVocabularyValue(t *testing.T) {
	vocab := DefaultVocabulary()
	v := newTestValidator()

	rapid.Check(t, func(t *rapid.T) {
		attr := rapid.SampledFrom(vocab.Attributes()).Draw(t, "attr")
		value := rapid.String().Draw(t, "value")
		if vocab.Contains(attr, value) {
			t.Skip("drew an allowed value")
		}

		req := validRequest()
		switch attr {
		case AttrDelimiter:
			req.Delimiter = &value
		case AttrFullyQualified:
			req.FullyQualified = &value
		case AttrSplitBySize:
			req.SplitBySize = &value
		case AttrStorageFiles:
			req.StorageFiles = &value
		case AttrArchiveType:
			req.ArchiveType = &value
		case AttrExtension:
			req.Extension = &value
		}

		err := v.ValidateForCreate(context.Background(), req)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if ve.Attribute != attr {
			t.Fatalf("error names %s, want %s", ve.Attribute, attr)
		}
	})
}
