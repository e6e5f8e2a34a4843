package indent

import (
	"fmt"

	"github.com/dshills/typewrap/internal/config"
)

// FromConfig returns the calculator, heuristic and style described by the
// editor settings. The "script" heuristic loads IndentScript; other
// heuristics use HeuristicCalculator.
func FromConfig(cfg config.EditorConfig, opts ...ScriptOption) (Calculator, Heuristic, Style, error) {
	h, err := ParseHeuristic(cfg.IndentHeuristic)
	if err != nil {
		return nil, HeuristicNone, Style{}, err
	}
	style := Tabs()
	if cfg.InsertSpaces {
		style = Spaces(cfg.IndentWidth)
	}

	if h != HeuristicScript {
		return HeuristicCalculator{}, h, style, nil
	}
	if cfg.IndentScript == "" {
		return nil, h, style, fmt.Errorf("indent heuristic %q needs editor.indent-script", h)
	}
	calc, err := LoadScript(cfg.IndentScript, opts...)
	if err != nil {
		return nil, h, style, err
	}
	return calc, h, style, nil
}
