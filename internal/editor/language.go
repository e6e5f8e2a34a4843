package editor

import (
	"path/filepath"
	"strings"
)

var languageByExt = map[string]string{
	".go":       "go",
	".rs":       "rust",
	".ts":       "typescript",
	".js":       "javascript",
	".py":       "python",
	".rb":       "ruby",
	".java":     "java",
	".c":        "c",
	".h":        "c",
	".cpp":      "cpp",
	".cc":       "cpp",
	".cxx":      "cpp",
	".hpp":      "cpp",
	".lua":      "lua",
	".sh":       "shellscript",
	".bash":     "shellscript",
	".json":     "json",
	".yaml":     "yaml",
	".yml":      "yaml",
	".toml":     "toml",
	".html":     "html",
	".htm":      "html",
	".md":       "markdown",
	".markdown": "markdown",
	".tex":      "latex",
	".rst":      "restructuredtext",
	".txt":      "text",
}

var languageByName = map[string]string{
	"Makefile":       "makefile",
	"makefile":       "makefile",
	"GNUmakefile":    "makefile",
	"COMMIT_EDITMSG": "git-commit",
}

// DetectLanguage returns a language id for path from its extension or,
// for files such as Makefile, its name. Unknown files are "text".
func DetectLanguage(path string) string {
	if lang, ok := languageByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	if lang, ok := languageByName[filepath.Base(path)]; ok {
		return lang
	}
	return "text"
}
