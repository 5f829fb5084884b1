package domain

import (
	"context"
)

// Validator checks create requests and query filters against the vocabulary
// and the layout catalog.
type Validator struct {
	vocabulary *Vocabulary
	layouts    LayoutChecker
}

// NewValidator creates a validator. layouts is consulted whenever a layout_id is supplied.
func NewValidator(vocabulary *Vocabulary, layouts LayoutChecker) *Validator {
	return &Validator{vocabulary: vocabulary, layouts: layouts}
}

// ValidateForCreate requires layout_id, verifies the layout exists and
// then checks every attribute of the request.
func (v *Validator) ValidateForCreate(ctx context.Context, req CreateRequest) error {
	if req.LayoutID == nil {
		return &ValidationError{Attribute: AttrLayoutID, Reason: "is required to create an extract type"}
	}
	if err := v.checkLayout(ctx, *req.LayoutID); err != nil {
		return err
	}
	return v.checkValues(req.Values())
}

// ValidateForQuery checks only the supplied filters. layout_id is optional,
// but when present the layout must exist.
func (v *Validator) ValidateForQuery(ctx context.Context, filter QueryFilter) error {
	if filter.LayoutID != nil {
		if err := v.checkLayout(ctx, *filter.LayoutID); err != nil {
			return err
		}
	}
	supplied := filter.Supplied()
	values := make([]AttributeValue, len(supplied))
	for i, f := range supplied {
		values[i] = AttributeValue{Attribute: f.Attribute, Value: Ptr(f.Value)}
	}
	return v.checkValues(values)
}

func (v *Validator) checkLayout(ctx context.Context, layoutID string) error {
	if err := v.layouts.LayoutExists(ctx, layoutID); err != nil {
		return &ValidationError{
			Attribute: AttrLayoutID,
			Value:     layoutID,
			Reason:    "does not reference an existing layout",
			Err:       err,
		}
	}
	return nil
}

// checkValues fails on the first absent value or out-of-vocabulary enum value.
func (v *Validator) checkValues(values []AttributeValue) error {
	for _, av := range values {
		if av.Value == nil {
			return &ValidationError{Attribute: av.Attribute, Reason: "cannot be null"}
		}
		if !v.vocabulary.Contains(av.Attribute, *av.Value) {
			allowed, _ := v.vocabulary.Allowed(av.Attribute)
			return &ValidationError{
				Attribute: av.Attribute,
				Value:     *av.Value,
				Allowed:   allowed,
				Reason:    "is not in the vocabulary",
			}
		}
	}
	return nil
}
