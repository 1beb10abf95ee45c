// Package render turns icon records into the generated artifact.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"golang.org/x/tools/imports"

	"github.com/louisbranch/iconkit/internal/codegen/geometry"
	"github.com/louisbranch/iconkit/internal/codegen/model"
	apperrors "github.com/louisbranch/iconkit/internal/platform/errors"
)

// Built-in targets.
const (
	TargetSlint = "slint"
	TargetGo    = "go"
)

const defaultGoPackage = "icons"

//go:embed templates/*.tmpl
var builtinTemplates embed.FS

// Options selects the template a Renderer executes.
type Options struct {
	// Target names the built-in template, and for TargetGo also enables Go
	// source formatting of the output. Defaults to TargetSlint.
	Target string
	// TemplatePath, when set, replaces the built-in template with a file.
	TemplatePath string
	// GoPackage is the package clause for TargetGo.
	GoPackage string
}

// Data is the value templates execute against.
type Data struct {
	Icons []model.Icon
	// Package is the Go package name, used by the go target.
	Package string
	// External reports whether the icons reference copied drawings.
	External bool
}

// Renderer renders icon records through a parsed template.
type Renderer struct {
	target   string
	pkg      string
	template *template.Template
}

// New parses the template selected by opts.
func New(opts Options) (*Renderer, error) {
	target := strings.TrimSpace(opts.Target)
	if target == "" {
		target = TargetSlint
	}
	if target != TargetSlint && target != TargetGo {
		return nil, apperrors.WithMetadata(apperrors.CodeConfigInvalid,
			fmt.Sprintf("unknown render target %q (want %s or %s)", target, TargetSlint, TargetGo),
			map[string]string{"target": target})
	}
	pkg := strings.TrimSpace(opts.GoPackage)
	if pkg == "" {
		pkg = defaultGoPackage
	}

	var (
		name string
		text []byte
		err  error
	)
	if opts.TemplatePath != "" {
		name = filepath.Base(opts.TemplatePath)
		text, err = os.ReadFile(opts.TemplatePath)
		if err != nil {
			return nil, apperrors.WrapWithMetadata(apperrors.CodeIOError, "read template",
				map[string]string{"path": opts.TemplatePath}, err)
		}
	} else {
		name = target + ".tmpl"
		text, err = builtinTemplates.ReadFile("templates/" + name)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeTemplateError, "load built-in template", err)
		}
	}

	tmpl, err := template.New(name).Funcs(funcMap()).Parse(string(text))
	if err != nil {
		return nil, apperrors.WrapWithMetadata(apperrors.CodeTemplateError, "parse template",
			map[string]string{"template": name}, err)
	}
	return &Renderer{target: target, pkg: pkg, template: tmpl}, nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"num":        geometry.FormatNumber,
		"unexported": unexported,
	}
}

// unexported lower-cases the first rune of name.
func unexported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToLower(r)) + name[size:]
}

// Render executes the template over icons, in the order given.
func (r *Renderer) Render(icons []model.Icon) ([]byte, error) {
	data := Data{Icons: icons, Package: r.pkg}
	for _, icon := range icons {
		if icon.External() {
			data.External = true
			break
		}
	}

	var buf bytes.Buffer
	if err := r.template.Execute(&buf, data); err != nil {
		return nil, apperrors.WrapWithMetadata(apperrors.CodeTemplateError, "execute template",
			map[string]string{"template": r.template.Name()}, err)
	}
	if r.target != TargetGo {
		return buf.Bytes(), nil
	}

	formatted, err := imports.Process(r.pkg+".go", buf.Bytes(), nil)
	if err != nil {
		return nil, apperrors.WrapWithMetadata(apperrors.CodeTemplateError, "format generated go source",
			map[string]string{"template": r.template.Name()}, err)
	}
	return formatted, nil
}

// WriteFile renders icons and writes the result to path, creating parent
// directories as needed.
func (r *Renderer) WriteFile(path string, icons []model.Icon) (int, error) {
	content, err := r.Render(icons)
	if err != nil {
		return 0, err
	}
	if err := writeOutput(path, content); err != nil {
		return 0, err
	}
	return len(content), nil
}

func writeOutput(path string, content []byte) error {
	meta := map[string]string{"path": path}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperrors.WrapWithMetadata(apperrors.CodeIOError, "create output dir", meta, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return apperrors.WrapWithMetadata(apperrors.CodeIOError, "write output", meta, err)
	}
	return nil
}
