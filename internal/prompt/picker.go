package prompt

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gitqueue/OG-Platform/pkg/blotter"
)

// PickTrade asks the user to choose one of trades. Options are shown by
// title.
func PickTrade(ctx context.Context, driver Driver, trades []blotter.TradeType) (blotter.TradeType, error) {
	if driver == nil {
		return blotter.TradeType{}, errors.New("prompt: driver is required")
	}
	if len(trades) == 0 {
		return blotter.TradeType{}, errors.New("prompt: no trade types to choose from")
	}

	options := make([]string, len(trades))
	for i, trade := range trades {
		options[i] = trade.Title
	}
	idx, err := driver.Select(ctx, SelectConfig{
		Message: "Trade type",
		Options: options,
		Help:    "Form loaded into the blotter dialog",
	})
	if err != nil {
		return blotter.TradeType{}, err
	}
	if idx < 0 || idx >= len(trades) {
		return blotter.TradeType{}, fmt.Errorf("prompt: selection %d out of range", idx)
	}
	return trades[idx], nil
}

// CollectData prompts for each dotted field path in typeMap, sorted, and
// returns the answers nested into a form data bag. Empty answers are skipped.
// Numeric and boolean fields are validated and converted.
func CollectData(ctx context.Context, driver Driver, typeMap map[string]string, fields ...string) (map[string]any, error) {
	if driver == nil {
		return nil, errors.New("prompt: driver is required")
	}
	if len(fields) == 0 {
		for path := range typeMap {
			if !strings.Contains(path, "[]") {
				fields = append(fields, path)
			}
		}
		sort.Strings(fields)
	}

	data := map[string]any{}
	for _, path := range fields {
		kind := baseType(typeMap[path])
		answer, err := driver.Input(ctx, InputConfig{
			Message:   path,
			Help:      typeMap[path],
			Validator: validatorFor(kind),
		})
		if err != nil {
			return nil, err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			continue
		}
		value, err := convert(kind, answer)
		if err != nil {
			return nil, fmt.Errorf("prompt: %s: %w", path, err)
		}
		setPath(data, path, value)
	}
	return data, nil
}

func baseType(typ string) string {
	if i := strings.IndexByte(typ, ':'); i >= 0 {
		return typ[:i]
	}
	return typ
}

func validatorFor(kind string) func(string) error {
	switch kind {
	case "number", "integer", "boolean":
		return func(answer string) error {
			answer = strings.TrimSpace(answer)
			if answer == "" {
				return nil
			}
			_, err := convert(kind, answer)
			return err
		}
	default:
		return nil
	}
}

func convert(kind, answer string) (any, error) {
	switch kind {
	case "number":
		return strconv.ParseFloat(answer, 64)
	case "integer":
		return strconv.ParseInt(answer, 10, 64)
	case "boolean":
		return strconv.ParseBool(answer)
	default:
		return answer, nil
	}
}

func setPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
