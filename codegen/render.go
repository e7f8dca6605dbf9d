package codegen

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.tpl
var templateFS embed.FS

const propertyIndent = "    "

// Renderer turns output units into C# source files
type Renderer struct {
	settings Settings
	file     *pongo2.Template
}

// NewRenderer loads the file template
func NewRenderer(settings Settings) (*Renderer, error) {
	templates, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to open templates: %w", err)
	}

	set := pongo2.NewSet("xsdgen", pongo2.NewFSLoader(templates))
	file, err := set.FromFile("file.tpl")
	if err != nil {
		return nil, fmt.Errorf("failed to load file template: %w", err)
	}

	return &Renderer{settings: settings, file: file}, nil
}

// RenderUnit renders a complete source file: usings, the namespace
// declaration and every class of the unit in order.
func (r *Renderer) RenderUnit(unit *OutputUnit) (string, error) {
	classes := make([]string, len(unit.Classes))
	for i, cm := range unit.Classes {
		classes[i] = r.RenderClass(cm)
	}

	out, err := r.file.Execute(pongo2.Context{
		"validation": r.settings.EmitValidationAnnotations,
		"json":       r.settings.EmitJSONHints,
		"namespace":  r.settings.Namespace,
		"classes":    classes,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", unit.FileName(), err)
	}
	return out, nil
}

// RenderClass renders one class declaration, preceded by a blank line
func (r *Renderer) RenderClass(cm *ClassModel) string {
	var sb strings.Builder
	sb.WriteString("\n\n")
	writeDoc(&sb, "", "summary", cm.Summary)
	writeDoc(&sb, "", "remarks", cm.Remarks)
	writeAnnotation(&sb, "", TypeBinding{Namespace: cm.Name.Namespace})
	if cm.IsRoot {
		writeAnnotation(&sb, "", RootBinding{Namespace: cm.Name.Namespace})
	}
	sb.WriteString("public class " + cm.Name.Local + "\n{\n")
	for i, p := range cm.Properties {
		if i > 0 {
			sb.WriteString("\n")
		}
		r.renderProperty(&sb, p)
	}
	sb.WriteString("}\n")
	return sb.String()
}

func (r *Renderer) renderProperty(sb *strings.Builder, p *PropertyModel) {
	writeDoc(sb, propertyIndent, "summary", p.Summary)
	writeDoc(sb, propertyIndent, "remarks", p.Remarks)
	for _, a := range p.Annotations {
		if r.include(a) {
			writeAnnotation(sb, propertyIndent, a)
		}
	}

	sb.WriteString(propertyIndent + "public ")
	if p.Required {
		sb.WriteString("required ")
	}
	sb.WriteString(p.FullType())
	if !p.Required {
		sb.WriteString("?")
	}
	sb.WriteString(" " + p.Name + " { get; set; }\n")

	if !p.Required {
		writeAnnotation(sb, propertyIndent, XMLIgnore{})
		if r.settings.EmitJSONHints {
			writeAnnotation(sb, propertyIndent, JSONIgnore{})
		}
		fmt.Fprintf(sb, "%spublic bool %sSpecified => %s != null;\n", propertyIndent, p.Name, p.Name)
	}
}

func (r *Renderer) include(a Annotation) bool {
	if IsValidation(a) && !r.settings.EmitValidationAnnotations {
		return false
	}
	if IsJSONHint(a) && !r.settings.EmitJSONHints {
		return false
	}
	return true
}

func writeAnnotation(sb *strings.Builder, indent string, a Annotation) {
	sb.WriteString(indent + "[" + RenderAnnotation(a) + "]\n")
}

// writeDoc writes an XML documentation block. Empty text writes nothing.
func writeDoc(sb *strings.Builder, indent, tag, text string) {
	if text == "" {
		return
	}
	prefix := indent + "/// "
	body := strings.ReplaceAll(escapeDoc(text), "\n", "\n"+prefix)
	fmt.Fprintf(sb, "%s<%s>\n%s%s\n%s</%s>\n", prefix, tag, prefix, body, prefix, tag)
}
