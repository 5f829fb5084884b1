package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/bigdbm/extractreg/internal/extracttype/domain"
	"github.com/bigdbm/extractreg/internal/log"
	"github.com/bigdbm/extractreg/internal/pubsub"
	"github.com/bigdbm/extractreg/internal/tracing"
)

// ProductBase is the product name whose storage root holds extract type records.
const ProductBase = "extract-types"

// Deps holds the collaborators of a RegistryService.
// Resolver, Layouts and Store are required; the rest have defaults.
type Deps struct {
	Resolver   domain.PathResolver
	Layouts    domain.LayoutChecker
	Store      domain.TabularStore
	Vocabulary *domain.Vocabulary
	UIDs       *domain.UIDGenerator
	Tracer     trace.Tracer
	Events     pubsub.Publisher[*domain.ExtractType]
	Product    string
}

// RegistryService registers and queries extract types.
type RegistryService struct {
	basePath   string
	vocabulary *domain.Vocabulary
	validator  *domain.Validator
	store      domain.TabularStore
	uids       *domain.UIDGenerator
	tracer     trace.Tracer
	events     pubsub.Publisher[*domain.ExtractType]
}

// NewRegistryService resolves the storage root for the product and wires the validator.
func NewRegistryService(deps Deps) (*RegistryService, error) {
	if deps.Resolver == nil || deps.Layouts == nil || deps.Store == nil {
		return nil, errors.New("registry service requires a path resolver, layout checker and store")
	}
	product := deps.Product
	if product == "" {
		product = ProductBase
	}
	basePath, err := deps.Resolver.ResolveBasePath(product)
	if err != nil {
		return nil, fmt.Errorf("resolve base path for %s: %w", product, err)
	}

	vocabulary := deps.Vocabulary
	if vocabulary == nil {
		vocabulary = domain.DefaultVocabulary()
	}
	uids := deps.UIDs
	if uids == nil {
		uids = domain.NewUIDGenerator()
	}
	tracer := deps.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("noop")
	}

	return &RegistryService{
		basePath:   basePath,
		vocabulary: vocabulary,
		validator:  domain.NewValidator(vocabulary, deps.Layouts),
		store:      deps.Store,
		uids:       uids,
		tracer:     tracer,
		events:     deps.Events,
	}, nil
}

// BasePath returns the resolved storage root.
func (s *RegistryService) BasePath() string {
	return s.basePath
}

// Vocabulary returns the vocabulary used for validation.
func (s *RegistryService) Vocabulary() *domain.Vocabulary {
	return s.vocabulary
}

// Create validates req, rejects semantic duplicates and persists a new extract type
// under <base>/<uid>.
func (s *RegistryService) Create(ctx context.Context, req domain.CreateRequest) (*domain.ExtractType, error) {
	ctx, span := s.tracer.Start(ctx, tracing.SpanCreate)
	defer span.End()
	if req.LayoutID != nil {
		span.SetAttributes(attribute.String(tracing.AttrLayoutID, *req.LayoutID))
	}

	created, err := s.create(ctx, req)
	if err != nil {
		tracing.Finish(span, err, ErrorKind(err))
		return nil, err
	}
	span.SetAttributes(attribute.String(tracing.AttrUID, created.UID()))
	tracing.Finish(span, nil, "")
	return created, nil
}

func (s *RegistryService) create(ctx context.Context, req domain.CreateRequest) (*domain.ExtractType, error) {
	if err := s.validator.ValidateForCreate(ctx, req); err != nil {
		log.Warn(log.CatRegistry, "create rejected", "error", err)
		return nil, err
	}

	record := domain.NewExtractType(s.uids.Next(), req.Fields())

	if err := s.checkDuplicate(ctx, record); err != nil {
		return nil, err
	}

	location := s.recordLocation(record.UID())
	if err := s.store.Write(ctx, []*domain.ExtractType{record}, location); err != nil {
		log.ErrorErr(log.CatRegistry, "failed to persist extract type", err, "location", location)
		return nil, &domain.StoreError{Op: "write", Location: location, Err: err}
	}
	log.Info(log.CatRegistry, "extract type created",
		"uid", record.UID(), "layout_id", record.LayoutID(), "location", location)

	if s.events != nil {
		s.events.Publish(pubsub.CreatedEvent, record)
	}
	return record, nil
}

// checkDuplicate compares record against everything stored. An empty store means
// there is nothing to collide with.
func (s *RegistryService) checkDuplicate(ctx context.Context, record *domain.ExtractType) error {
	existing, err := s.store.ReadAll(ctx, s.basePath)
	if errors.Is(err, domain.ErrNoData) {
		log.Info(log.CatRegistry, "no existing extract types found, skipping duplicate check", "base", s.basePath)
		return nil
	}
	if err != nil {
		return &domain.StoreError{Op: "read", Location: s.basePath, Err: err}
	}

	if err := domain.NewDuplicateIndex(existing).Check(record); err != nil {
		log.Warn(log.CatRegistry, "duplicate extract type rejected", "layout_id", record.LayoutID())
		return err
	}
	return nil
}

// Query returns every stored extract type matching all supplied filter values.
// The result is never nil; no match yields an empty slice.
func (s *RegistryService) Query(ctx context.Context, filter domain.QueryFilter) ([]*domain.ExtractType, error) {
	ctx, span := s.tracer.Start(ctx, tracing.SpanQuery)
	defer span.End()

	supplied := filter.Supplied()
	span.SetAttributes(attribute.Int(tracing.AttrFilterCount, len(supplied)))

	result, err := s.query(ctx, filter, supplied)
	if err != nil {
		tracing.Finish(span, err, ErrorKind(err))
		return nil, err
	}
	span.SetAttributes(attribute.Int(tracing.AttrResultCount, len(result)))
	tracing.Finish(span, nil, "")
	return result, nil
}

func (s *RegistryService) query(ctx context.Context, filter domain.QueryFilter, supplied []domain.FilterValue) ([]*domain.ExtractType, error) {
	if err := s.validator.ValidateForQuery(ctx, filter); err != nil {
		return nil, err
	}

	records, err := s.store.ReadAll(ctx, s.basePath)
	if err != nil {
		return nil, &domain.StoreError{Op: "read", Location: s.basePath, Err: err}
	}

	// Narrow one filter at a time.
	for _, f := range supplied {
		records = narrow(records, f)
	}
	if records == nil {
		records = []*domain.ExtractType{}
	}
	log.Debug(log.CatRegistry, "query complete", "filters", len(supplied), "matches", len(records))
	return records, nil
}

func narrow(records []*domain.ExtractType, f domain.FilterValue) []*domain.ExtractType {
	out := make([]*domain.ExtractType, 0, len(records))
	for _, r := range records {
		if r.Matches([]domain.FilterValue{f}) {
			out = append(out, r)
		}
	}
	return out
}

// ImportResult reports the outcome of a batch import.
type ImportResult struct {
	Created []*domain.ExtractType
	Failed  int // index of the failing request, -1 when all succeeded
	Err     error
}

// Import creates each request in order and stops at the first failure.
// Records created before the failure stay persisted.
func (s *RegistryService) Import(ctx context.Context, reqs []domain.CreateRequest) ImportResult {
	ctx, span := s.tracer.Start(ctx, tracing.SpanImport)
	defer span.End()
	span.SetAttributes(attribute.Int(tracing.AttrImportSize, len(reqs)))

	result := ImportResult{Failed: -1}
	for i, req := range reqs {
		created, err := s.Create(ctx, req)
		if err != nil {
			result.Failed = i
			result.Err = fmt.Errorf("extract type %d: %w", i, err)
			log.Warn(log.CatRegistry, "import stopped", "index", i, "created", len(result.Created))
			tracing.Finish(span, result.Err, ErrorKind(err))
			return result
		}
		result.Created = append(result.Created, created)
	}
	span.SetAttributes(attribute.Int(tracing.AttrResultCount, len(result.Created)))
	tracing.Finish(span, nil, "")
	return result
}

// ErrorKind classifies err as "validation", "duplicate", "store" or "internal".
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case domain.IsValidation(err):
		return "validation"
	case domain.IsDuplicate(err):
		return "duplicate"
	case domain.IsStore(err):
		return "store"
	default:
		return "internal"
	}
}

func (s *RegistryService) recordLocation(uid string) string {
	return strings.TrimRight(s.basePath, "/") + "/" + uid
}
