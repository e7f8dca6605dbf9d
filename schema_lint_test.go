package xsd

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentflare-ai/go-xmldom"
)

func lintString(t *testing.T, content string) []LintIssue {
	t.Helper()
	doc, err := xmldom.Decode(strings.NewReader(content))
	if err != nil {
		t.Fatalf("Failed to parse XML: %v", err)
	}
	return NewSchemaLinter().Lint(doc)
}

func TestLintCleanSchema(t *testing.T) {
	issues := lintString(t, vehicleSchema)
	if len(issues) != 0 {
		t.Errorf("Expected no issues, got %v", issues)
	}
}

func TestLintIssues(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "anonymous global type",
			body: `<xs:complexType><xs:sequence/></xs:complexType>`,
			want: "global complexType must have a name attribute",
		},
		{
			name: "named local type",
			body: `<xs:element name="A"><xs:simpleType name="Local"><xs:restriction base="xs:string"/></xs:simpleType></xs:element>`,
			want: "local simpleType must not have a name attribute",
		},
		{
			name: "simple type without derivation",
			body: `<xs:simpleType name="Empty"/>`,
			want: "simpleType must have exactly one of: restriction, list, or union",
		},
		{
			name: "name and ref",
			body: `<xs:complexType name="T"><xs:sequence><xs:element name="A" ref="B"/></xs:sequence></xs:complexType>`,
			want: "element cannot have both 'name' and 'ref' attributes",
		},
		{
			name: "type and inline type",
			body: `<xs:element name="A" type="xs:string"><xs:simpleType><xs:restriction base="xs:string"/></xs:simpleType></xs:element>`,
			want: "element cannot have both 'type' attribute and inline type definition",
		},
		{
			name: "min greater than max",
			body: `<xs:complexType name="T"><xs:sequence><xs:element name="A" type="xs:string" minOccurs="3" maxOccurs="2"/></xs:sequence></xs:complexType>`,
			want: "minOccurs (3) cannot be greater than maxOccurs (2)",
		},
		{
			name: "invalid maxOccurs",
			body: `<xs:complexType name="T"><xs:sequence maxOccurs="many"/></xs:complexType>`,
			want: "invalid maxOccurs value 'many': must be non-negative integer or 'unbounded'",
		},
		{
			name: "global occurrence bounds",
			body: `<xs:element name="A" type="xs:string" minOccurs="0"/>`,
			want: "global element cannot have occurrence bounds",
		},
		{
			name: "invalid use",
			body: `<xs:complexType name="T"><xs:attribute name="a" use="always"/></xs:complexType>`,
			want: "invalid use value 'always'",
		},
		{
			name: "default and fixed",
			body: `<xs:attribute name="a" default="x" fixed="y"/>`,
			want: "attribute cannot have both 'default' and 'fixed' attributes",
		},
		{
			name: "invalid name",
			body: `<xs:element name="1st" type="xs:string"/>`,
			want: "invalid element name '1st': must be a valid NCName",
		},
		{
			name: "duplicate id",
			body: `<xs:element id="x" name="A" type="xs:string"/><xs:element id="x" name="B" type="xs:string"/>`,
			want: "duplicate id value 'x'",
		},
		{
			name: "content without derivation",
			body: `<xs:complexType name="T"><xs:simpleContent/></xs:complexType>`,
			want: "simpleContent must have either restriction or extension child",
		},
		{
			name: "invalid mixed",
			body: `<xs:complexType name="T" mixed="yes"><xs:sequence/></xs:complexType>`,
			want: "invalid mixed value 'yes'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := lintString(t, `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:lint">`+tt.body+`</xs:schema>`)

			found := false
			for _, issue := range issues {
				if strings.Contains(issue.Message, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected issue containing %q, got %v", tt.want, issues)
			}
		})
	}
}

func TestLintIssueComponent(t *testing.T) {
	issues := lintString(t, `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:element name="Bad" type="xs:string" maxOccurs="2"/>
</xs:schema>`)

	if len(issues) != 1 {
		t.Fatalf("Expected 1 issue, got %v", issues)
	}
	if got := issues[0].String(); got != "<element name='Bad'>: global element cannot have occurrence bounds" {
		t.Errorf("Unexpected issue: %s", got)
	}
}

func TestLintNotSchema(t *testing.T) {
	issues := lintString(t, `<root/>`)
	if len(issues) != 1 || issues[0].Message != "document root must be xs:schema element" {
		t.Errorf("Unexpected issues: %v", issues)
	}
}

func TestLoaderLogsLintIssues(t *testing.T) {
	dir := t.TempDir()
	content := `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:lint">
  <xs:element name="Doc">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="Item" type="xs:string" minOccurs="2" maxOccurs="1"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>
</xs:schema>`
	path := filepath.Join(dir, "lint.xsd")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	loader := NewSchemaLoader(dir)
	loader.Logger = slog.New(slog.NewTextHandler(&logs, nil))

	if _, err := loader.LoadSchemaWithImports(path); err != nil {
		t.Fatalf("Lint issues must not fail loading: %v", err)
	}
	if !strings.Contains(logs.String(), "schema lint") || !strings.Contains(logs.String(), "minOccurs (2) cannot be greater than maxOccurs (1)") {
		t.Errorf("Expected lint warning in log, got:\n%s", logs.String())
	}
}

func TestLintSchemaFile(t *testing.T) {
	if _, err := LintSchemaFile(filepath.Join(t.TempDir(), "missing.xsd")); err == nil {
		t.Error("Expected error for missing file")
	}
}
