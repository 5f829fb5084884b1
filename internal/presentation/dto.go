package presentation

import (
	"errors"

	"github.com/bigdbm/extractreg/internal/extracttype/application"
	"github.com/bigdbm/extractreg/internal/extracttype/domain"
)

// ExtractTypeDTO is an extract type keyed by its persisted column names.
type ExtractTypeDTO struct {
	UID              string `json:"extract_type_uid"`
	LayoutID         string `json:"layout_id"`
	Delimiter        string `json:"delimiter"`
	FullyQualified   string `json:"fully_qualified"`
	SplitBySize      string `json:"split_by_size"`
	StorageFiles     string `json:"storage_files"`
	ArchiveType      string `json:"archive_type"`
	Extension        string `json:"extension"`
	InternalName     string `json:"internal_name"`
	NamingConvention string `json:"naming_convention"`
	Example          string `json:"example"`
	Observation      string `json:"observation"`
}

// VocabularyDTO lists the allowed values of one enum attribute.
type VocabularyDTO struct {
	Attribute string   `json:"attribute"`
	Values    []string `json:"values"`
}

// ImportResultDTO reports a batch import.
type ImportResultDTO struct {
	Created []ExtractTypeDTO `json:"created"`
	Failed  *int             `json:"failed_index,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// ErrorDTO is the machine-readable form of a failed operation.
type ErrorDTO struct {
	Kind    string   `json:"kind"`
	Message string   `json:"message"`
	Field   string   `json:"attribute,omitempty"`
	Allowed []string `json:"allowed,omitempty"`
}

// FromDomainExtractType converts a domain record to a DTO.
func FromDomainExtractType(e *domain.ExtractType) ExtractTypeDTO {
	return ExtractTypeDTO{
		UID:              e.UID(),
		LayoutID:         e.LayoutID(),
		Delimiter:        e.Delimiter(),
		FullyQualified:   e.FullyQualified(),
		SplitBySize:      e.SplitBySize(),
		StorageFiles:     e.StorageFiles(),
		ArchiveType:      e.ArchiveType(),
		Extension:        e.Extension(),
		InternalName:     e.InternalName(),
		NamingConvention: e.NamingConvention(),
		Example:          e.Example(),
		Observation:      e.Observation(),
	}
}

// FromDomainExtractTypes converts records to DTOs. The result is never nil.
func FromDomainExtractTypes(records []*domain.ExtractType) []ExtractTypeDTO {
	dtos := make([]ExtractTypeDTO, len(records))
	for i, r := range records {
		dtos[i] = FromDomainExtractType(r)
	}
	return dtos
}

// FromVocabulary lists every enum attribute with its allowed values in column order.
func FromVocabulary(v *domain.Vocabulary) []VocabularyDTO {
	attrs := v.Attributes()
	dtos := make([]VocabularyDTO, 0, len(attrs))
	for _, a := range attrs {
		values, _ := v.Allowed(a)
		dtos = append(dtos, VocabularyDTO{Attribute: a.String(), Values: values})
	}
	return dtos
}

// FromImportResult converts an import outcome to a DTO.
func FromImportResult(r application.ImportResult) ImportResultDTO {
	dto := ImportResultDTO{Created: FromDomainExtractTypes(r.Created)}
	if r.Err != nil {
		failed := r.Failed
		dto.Failed = &failed
		dto.Error = r.Err.Error()
	}
	return dto
}

// FromError classifies err for output.
func FromError(err error) ErrorDTO {
	dto := ErrorDTO{Kind: application.ErrorKind(err), Message: err.Error()}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		dto.Field = ve.Attribute.String()
		dto.Allowed = ve.Allowed
	}
	return dto
}
