package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"

	xsd "github.com/agentflare-ai/go-xsdgen"
)

const testNamespace = "urn:test"

// schemaDoc wraps top-level declarations in a schema element with target
// namespace urn:test, prefix t and qualified local elements.
func schemaDoc(body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           xmlns:t="urn:test"
           targetNamespace="urn:test"
           elementFormDefault="qualified">
` + body + `
</xs:schema>`
}

func loadSchema(t *testing.T, content string) *xsd.Schema {
	t.Helper()
	schema, err := xsd.LoadSchemaFromString(content, t.TempDir())
	require.NoError(t, err)
	return schema
}

func qname(local string) xsd.QName {
	return xsd.QName{Namespace: testNamespace, Local: local}
}

func findProperty(t *testing.T, cm *ClassModel, name string) *PropertyModel {
	t.Helper()
	for _, p := range cm.Properties {
		if p.Name == name {
			return p
		}
	}
	require.Failf(t, "property not found", "%s has no property %s", cm.Name.Local, name)
	return nil
}

func renderedAnnotations(p *PropertyModel) []string {
	out := make([]string, len(p.Annotations))
	for i, a := range p.Annotations {
		out[i] = RenderAnnotation(a)
	}
	return out
}
