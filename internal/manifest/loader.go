package manifest

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/bigdbm/extractreg/internal/extracttype/domain"
)

// Load validates a manifest and converts its entries to create requests in file order.
func Load(data []byte) ([]domain.CreateRequest, error) {
	raw, err := validate(data)
	if err != nil {
		return nil, err
	}

	doc, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("manifest root is %T, want a mapping", raw)
	}
	entries, _ := doc["extract_types"].([]any)

	reqs := make([]domain.CreateRequest, 0, len(entries))
	for i, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("extract_types[%d] is %T, want a mapping", i, e)
		}
		req, err := toRequest(entry)
		if err != nil {
			return nil, fmt.Errorf("extract_types[%d]: %w", i, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// LoadFile reads and loads the manifest at path.
func LoadFile(path string) ([]domain.CreateRequest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is a user-supplied manifest
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	reqs, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return reqs, nil
}

func toRequest(entry map[string]any) (domain.CreateRequest, error) {
	var req domain.CreateRequest

	for _, av := range []struct {
		attr domain.Attribute
		dst  **string
	}{
		{domain.AttrLayoutID, &req.LayoutID},
		{domain.AttrDelimiter, &req.Delimiter},
		{domain.AttrFullyQualified, &req.FullyQualified},
		{domain.AttrSplitBySize, &req.SplitBySize},
		{domain.AttrStorageFiles, &req.StorageFiles},
		{domain.AttrArchiveType, &req.ArchiveType},
		{domain.AttrExtension, &req.Extension},
	} {
		v, err := scalar(entry[av.attr.String()])
		if err != nil {
			return req, fmt.Errorf("%s: %w", av.attr, err)
		}
		*av.dst = v
	}

	for _, tv := range []struct {
		attr domain.Attribute
		dst  *string
	}{
		{domain.AttrInternalName, &req.InternalName},
		{domain.AttrNamingConvention, &req.NamingConvention},
		{domain.AttrExample, &req.Example},
		{domain.AttrObservation, &req.Observation},
	} {
		v, err := scalar(entry[tv.attr.String()])
		if err != nil {
			return req, fmt.Errorf("%s: %w", tv.attr, err)
		}
		if v != nil {
			*tv.dst = *v
		}
	}
	return req, nil
}

// scalar converts a decoded YAML value to an optional string.
// Integers are accepted so that unquoted layout ids like 1001 work, and so are
// whole floats like 1001.0, which the schema counts as integers.
func scalar(v any) (*string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		return &val, nil
	case int:
		s := strconv.Itoa(val)
		return &s, nil
	case int64:
		s := strconv.FormatInt(val, 10)
		return &s, nil
	case uint64:
		s := strconv.FormatUint(val, 10)
		return &s, nil
	case float64:
		if val != math.Trunc(val) || math.IsInf(val, 0) {
			return nil, fmt.Errorf("%v is not a whole number", val)
		}
		s := strconv.FormatFloat(val, 'f', -1, 64)
		return &s, nil
	default:
		return nil, fmt.Errorf("unsupported value of type %T", v)
	}
}
