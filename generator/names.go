package generator

import (
	"go/token"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ardanlabs/bindgen/api"
)

var acronyms = map[string]bool{
	"id": true, "url": true, "api": true, "http": true, "json": true, "xml": true,
	"sql": true, "io": true, "ip": true, "tcp": true, "udp": true, "gl": true, "cl": true,
}

// reserved names would shadow identifiers generated code relies on.
var reserved = map[string]bool{
	"unsafe": true, "ffi": true, "unix": true, "apiutil": true, "len": true,
}

func toGoName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_'
	})

	var result strings.Builder
	for _, part := range parts {
		if acronyms[strings.ToLower(part)] {
			result.WriteString(strings.ToUpper(part))
			continue
		}
		r, size := utf8.DecodeRuneInString(part)
		result.WriteRune(unicode.ToUpper(r))
		result.WriteString(part[size:])
	}

	return result.String()
}

func toLowerCamel(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_'
	})
	if len(parts) == 0 {
		return ""
	}

	first := parts[0]
	if acronyms[strings.ToLower(first)] {
		first = strings.ToLower(first)
	} else {
		r, size := utf8.DecodeRuneInString(first)
		first = string(unicode.ToLower(r)) + first[size:]
	}

	goName := first + toGoName(strings.Join(parts[1:], "_"))
	if token.IsKeyword(goName) || reserved[goName] {
		goName += "_"
	}
	return goName
}

func paramName(p *api.Parameter) string {
	if name := toLowerCamel(p.Name); name != "" {
		return name
	}
	return "arg"
}

// fileName maps a template name to a Go file name that is not subject to
// build constraints.
func fileName(templateName string) string {
	name := strings.ToLower(templateName)
	if i := strings.LastIndexByte(name, '_'); i >= 0 && slices.Contains(constrainedSuffixes, name[i+1:]) {
		name += "_api"
	}
	return name + ".go"
}

// constrainedSuffixes are the file name suffixes the go tool reads as build
// constraints.
var constrainedSuffixes = strings.Fields(`
	test
	aix android darwin dragonfly freebsd illumos ios js linux netbsd openbsd plan9 solaris wasip1 windows
	386 amd64 arm arm64 loong64 mips mips64 ppc64 ppc64le riscv64 s390x wasm
`)

// writeDoc writes doc as a Go comment. When name is set the first sentence
// is rewritten to start with it.
func writeDoc(b *strings.Builder, indent, name, doc string) {
	doc = api.TrimIndent(doc)
	if doc == "" {
		return
	}
	if name != "" {
		doc = name + " " + lowerFirstWord(doc)
	}
	for _, line := range strings.Split(doc, "\n") {
		if line == "" {
			b.WriteString(indent + "//\n")
			continue
		}
		b.WriteString(indent + "// " + line + "\n")
	}
}

func lowerFirstWord(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if !unicode.IsUpper(r) {
		return s
	}
	next, _ := utf8.DecodeRuneInString(s[size:])
	if !unicode.IsLower(next) {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func docLinks(links []string) string {
	out := make([]string, len(links))
	for i, l := range links {
		out[i] = "[" + strings.TrimPrefix(l, "#") + "]"
	}
	return strings.Join(out, ", ")
}
