package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/NikitaCOEUR/devcmd/internal/tokenizer"
)

// TemplateData is what a command template is executed against
type TemplateData struct {
	Command string
	// Args maps flag names to their values. Repeated flags accumulate.
	Args map[string][]string
	// Positional holds the values typed before the first flag
	Positional []string
}

// Has reports whether the flag was given, with or without values
func (d TemplateData) Has(name string) bool {
	_, ok := d.Args[name]
	return ok
}

func newTemplateData(command string, args []tokenizer.Argument) TemplateData {
	data := TemplateData{
		Command:    command,
		Args:       make(map[string][]string),
		Positional: []string{},
	}
	for _, arg := range args {
		if !arg.HasName() {
			data.Positional = append(data.Positional, arg.Values...)
			continue
		}
		values, ok := data.Args[arg.Name]
		if !ok {
			values = []string{}
		}
		data.Args[arg.Name] = append(values, arg.Values...)
	}
	return data
}

// ParseTemplate parses a command template with the sprig function set
func ParseTemplate(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template for %s: %w", name, err)
	}
	return tmpl, nil
}

// TemplateHandler renders text with the invocation's arguments
func TemplateHandler(name, text string) (Handler, error) {
	tmpl, err := ParseTemplate(name, text)
	if err != nil {
		return nil, err
	}

	return func(_ context.Context, w io.Writer, args []tokenizer.Argument) error {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, newTemplateData(name, args)); err != nil {
			return fmt.Errorf("failed to render template: %w", err)
		}
		if buf.Len() > 0 && !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
			buf.WriteByte('\n')
		}
		_, err := w.Write(buf.Bytes())
		return err
	}, nil
}

// ArgumentsHandler prints the parsed invocation, one argument per line
func ArgumentsHandler(name string) Handler {
	return func(_ context.Context, w io.Writer, args []tokenizer.Argument) error {
		var b strings.Builder
		b.WriteString(name + "\n")
		for _, arg := range args {
			label := "(positional)"
			if arg.HasName() {
				label = "-" + arg.Name
			}
			quoted := make([]string, 0, len(arg.Values))
			for _, v := range arg.Values {
				quoted = append(quoted, tokenizer.Quote(v))
			}
			b.WriteString(strings.TrimRight(fmt.Sprintf("  %s %s", label, strings.Join(quoted, " ")), " ") + "\n")
		}
		_, err := io.WriteString(w, b.String())
		return err
	}
}
