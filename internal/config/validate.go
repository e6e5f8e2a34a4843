package config

import (
	"fmt"
	"slices"

	"github.com/dshills/typewrap/internal/config/loader"
)

// validate checks a merged settings map. Missing keys are fine; the
// section accessors fall back to defaults for them.
func validate(data map[string]any) error {
	var errs ValidationErrors

	checkInt := func(path string, ok func(int) bool, msg string) {
		v, found := loader.GetPath(data, path)
		if !found {
			return
		}
		n, isInt := asInt(v)
		if !isInt {
			errs = append(errs, &ValidationError{Path: path, Message: "must be an integer", Value: v})
			return
		}
		if !ok(n) {
			errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v})
		}
	}
	checkBool := func(path string) {
		if v, found := loader.GetPath(data, path); found {
			if _, isBool := v.(bool); !isBool {
				errs = append(errs, &ValidationError{Path: path, Message: "must be a boolean", Value: v})
			}
		}
	}

	checkInt(KeyTextWidth, func(n int) bool { return n >= 0 }, "must not be negative")
	checkInt(KeyTabWidth, func(n int) bool { return n > 0 }, "must be positive")
	checkInt(KeyIndentWidth, func(n int) bool { return n > 0 }, "must be positive")
	checkBool(KeyWrapWhenTyping)
	checkBool(KeyInsertSpaces)
	checkBool(KeySaveFileInfo)

	if v, found := loader.GetPath(data, KeyIndentHeuristic); found {
		s, isString := v.(string)
		if !isString || !slices.Contains(IndentHeuristics, s) {
			errs = append(errs, &ValidationError{
				Path:    KeyIndentHeuristic,
				Message: fmt.Sprintf("must be one of %v", IndentHeuristics),
				Value:   v,
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
