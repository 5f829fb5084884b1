package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidationError_Messages(t *testing.T) {
	require.Equal(t, "layout_id cannot be null",
		(&ValidationError{Attribute: AttrLayoutID, Reason: "cannot be null"}).Error())

	wrapped := &ValidationError{Attribute: AttrLayoutID, Value: "7", Reason: "does not reference an existing layout", Err: ErrLayoutNotFound}
	require.Equal(t, "layout_id does not reference an existing layout: layout not found", wrapped.Error())
	require.ErrorIs(t, wrapped, ErrLayoutNotFound)

	enum := &ValidationError{Attribute: AttrStorageFiles, Value: "maybe", Allowed: []string{"yes", "no"}}
	require.Equal(t, `storage_files value is invalid: "maybe". Values are: "yes", "no"`, enum.Error())
}

func TestDuplicateError_NamesEveryAttribute(t *testing.T) {
	fields := Fields{
		LayoutID:     "42",
		Delimiter:    DelimiterTab,
		Extension:    ExtensionTSV,
		InternalName: "daily",
		Observation:  "nightly run",
	}
	msg := (&DuplicateError{Fields: fields}).Error()

	require.Contains(t, msg, "layout_id=42")
	require.Contains(t, msg, `delimiter="tab sep"`)
	require.Contains(t, msg, `extension="tsv"`)
	require.Contains(t, msg, `internal_name="daily"`)
	require.Contains(t, msg, `naming_convention=""`)
	require.Contains(t, msg, `example=""`)
	require.Contains(t, msg, `observation="nightly run"`)

	other := fields
	other.Observation = "ad hoc"
	require.NotEqual(t, msg, (&DuplicateError{Fields: other}).Error())
}

func TestStoreError(t *testing.T) {
	err := fmt.Errorf("create: %w", &StoreError{Op: "read", Location: "/base", Err: ErrNoData})

	require.True(t, IsStore(err))
	require.False(t, IsValidation(err))
	require.False(t, IsDuplicate(err))
	require.ErrorIs(t, err, ErrNoData)
	require.Contains(t, err.Error(), "store read /base")

	var se *StoreError
	require.True(t, errors.As(err, &se))
	require.Equal(t, "read", se.Op)
}
