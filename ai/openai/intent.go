package openai

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/poiesic/toolshelf/ai"
	"github.com/poiesic/toolshelf/core"
)

// parseIntent decodes a model reply into a SearchIntent.
// The reply is decoded as an untyped document first and every field is
// checked explicitly, so a well-formed object with wrong field types or
// out-of-vocabulary values is rejected instead of silently zeroed.
// Unknown keys are ignored.
func parseIntent(reply string) (*core.SearchIntent, error) {
	var doc any
	if err := json.Unmarshal([]byte(cleanResponse(reply)), &doc); err != nil {
		return nil, fmt.Errorf("decode intent: %w", err)
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, schemaError("top level must be an object, got %T", doc)
	}

	intent := &core.SearchIntent{}

	rawKeywords, present := obj["keywords"]
	if !present {
		return nil, schemaError("keywords is required")
	}
	list, ok := rawKeywords.([]any)
	if !ok {
		return nil, schemaError("keywords must be an array, got %T", rawKeywords)
	}
	keywords := make([]string, 0, len(list))
	for i, v := range list {
		s, ok := v.(string)
		if !ok {
			return nil, schemaError("keywords[%d] must be a string, got %T", i, v)
		}
		keywords = append(keywords, s)
	}
	intent.Keywords = core.NormalizeKeywords(keywords)

	category, err := optionalString(obj, "category")
	if err != nil {
		return nil, err
	}
	if category != "" {
		intent.Category = core.Category(category)
		if !intent.Category.Valid() {
			return nil, schemaError("category %q is not one of %v", category, ai.CategoryNames())
		}
	}

	if raw, present := obj["minRating"]; present && raw != nil {
		n, ok := raw.(float64)
		if !ok || n != math.Trunc(n) {
			return nil, schemaError("minRating must be an integer, got %v", raw)
		}
		if n < core.MinRating || n > core.MaxRating {
			return nil, schemaError("minRating %v is outside %d-%d", n, core.MinRating, core.MaxRating)
		}
		intent.MinRating = int(n)
	}

	bucket, err := optionalString(obj, "dateRange")
	if err != nil {
		return nil, err
	}
	if bucket != "" {
		intent.DateRange = core.DateBucket(bucket)
		if !intent.DateRange.Valid() {
			return nil, schemaError("dateRange %q is not one of %v", bucket, ai.DateBucketNames())
		}
	}

	if err := core.ValidateIntent(intent); err != nil {
		return nil, fmt.Errorf("%w: %w", ai.ErrSchemaViolation, err)
	}
	return intent, nil
}

// optionalString reads a nullable string field. Missing, null and "" all mean absent.
func optionalString(obj map[string]any, key string) (string, error) {
	raw, present := obj[key]
	if !present || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", schemaError("%s must be a string, got %T", key, raw)
	}
	return s, nil
}

func schemaError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ai.ErrSchemaViolation, fmt.Sprintf(format, args...))
}
