package linecount

import (
	"path/filepath"
	"strings"
)

// languageDef describes how to recognise and count one language
type languageDef struct {
	blockEnd     string
	blockStart   string
	lineComments []string
	name         string
}

var (
	cStyle     = languageDef{lineComments: []string{"//"}, blockStart: "/*", blockEnd: "*/"}
	hashStyle  = languageDef{lineComments: []string{"#"}}
	noComments = languageDef{}
)

func lang(name string, def languageDef) languageDef {
	def.name = name
	return def
}

// byExtension maps a lower-cased extension to its language
var byExtension = map[string]languageDef{
	".c":     lang("C", cStyle),
	".h":     lang("C Header", cStyle),
	".cc":    lang("C++", cStyle),
	".cpp":   lang("C++", cStyle),
	".hpp":   lang("C++ Header", cStyle),
	".cs":    lang("C#", cStyle),
	".css":   lang("CSS", languageDef{blockStart: "/*", blockEnd: "*/"}),
	".go":    lang("Go", cStyle),
	".html":  lang("HTML", languageDef{blockStart: "<!--", blockEnd: "-->"}),
	".java":  lang("Java", cStyle),
	".js":    lang("JavaScript", cStyle),
	".json":  lang("JSON", noComments),
	".jsx":   lang("JSX", cStyle),
	".kt":    lang("Kotlin", cStyle),
	".lua":   lang("Lua", languageDef{lineComments: []string{"--"}, blockStart: "--[[", blockEnd: "]]"}),
	".md":    lang("Markdown", noComments),
	".php":   lang("PHP", languageDef{lineComments: []string{"//", "#"}, blockStart: "/*", blockEnd: "*/"}),
	".py":    lang("Python", hashStyle),
	".rb":    lang("Ruby", hashStyle),
	".rs":    lang("Rust", cStyle),
	".scala": lang("Scala", cStyle),
	".sh":    lang("Shell", hashStyle),
	".sql":   lang("SQL", languageDef{lineComments: []string{"--"}, blockStart: "/*", blockEnd: "*/"}),
	".swift": lang("Swift", cStyle),
	".toml":  lang("TOML", hashStyle),
	".ts":    lang("TypeScript", cStyle),
	".tsx":   lang("TSX", cStyle),
	".yaml":  lang("YAML", hashStyle),
	".yml":   lang("YAML", hashStyle),
	".zig":   lang("Zig", languageDef{lineComments: []string{"//"}}),
}

// byFilename covers well-known files without a useful extension
var byFilename = map[string]languageDef{
	"Dockerfile": lang("Dockerfile", hashStyle),
	"Makefile":   lang("Makefile", hashStyle),
	"go.mod":     lang("Go Module", languageDef{lineComments: []string{"//"}}),
}

// detect returns the language for path, or false when it is not counted
func detect(path string) (languageDef, bool) {
	base := filepath.Base(path)
	if def, ok := byFilename[base]; ok {
		return def, true
	}
	def, ok := byExtension[strings.ToLower(filepath.Ext(base))]
	return def, ok
}
