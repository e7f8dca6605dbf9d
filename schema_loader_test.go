package xsd

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const mainSchema = `<?xml version="1.0" encoding="UTF-8"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           targetNamespace="http://example.com/main"
           xmlns:main="http://example.com/main"
           xmlns:types="http://example.com/types"
           elementFormDefault="qualified">

    <xs:import namespace="http://example.com/types" schemaLocation="types.xsd"/>
    <xs:include schemaLocation="common.xsd"/>

    <xs:element name="document">
        <xs:complexType>
            <xs:sequence>
                <xs:element name="title" type="xs:string"/>
                <xs:element name="author" type="types:personType"/>
                <xs:element name="status" type="main:statusType"/>
            </xs:sequence>
        </xs:complexType>
    </xs:element>
</xs:schema>`

const typesSchema = `<?xml version="1.0" encoding="UTF-8"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           targetNamespace="http://example.com/types"
           xmlns:types="http://example.com/types">

    <xs:complexType name="personType">
        <xs:sequence>
            <xs:element name="name" type="xs:string"/>
            <xs:element name="email" type="types:emailType"/>
        </xs:sequence>
    </xs:complexType>

    <xs:simpleType name="emailType">
        <xs:restriction base="xs:string">
            <xs:pattern value="[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}"/>
        </xs:restriction>
    </xs:simpleType>
</xs:schema>`

const commonSchema = `<?xml version="1.0" encoding="UTF-8"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           targetNamespace="http://example.com/main">
    <xs:simpleType name="statusType">
        <xs:restriction base="xs:string">
            <xs:enumeration value="draft"/>
            <xs:enumeration value="final"/>
        </xs:restriction>
    </xs:simpleType>
    <xs:element name="status" type="xs:string"/>
</xs:schema>`

func writeSchemaFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}

func TestSchemaImportAndInclude(t *testing.T) {
	dir := writeSchemaFiles(t, map[string]string{
		"main.xsd":   mainSchema,
		"types.xsd":  typesSchema,
		"common.xsd": commonSchema,
	})

	schema, err := LoadSchemaWithImports(filepath.Join(dir, "main.xsd"))
	if err != nil {
		t.Fatalf("Failed to load schema with imports: %v", err)
	}

	if schema.TargetNamespace != "http://example.com/main" {
		t.Errorf("target namespace = %s", schema.TargetNamespace)
	}
	if len(schema.ImportedSchemas) != 3 {
		t.Errorf("expected 3 loaded documents, got %d", len(schema.ImportedSchemas))
	}

	personType := QName{Namespace: "http://example.com/types", Local: "personType"}
	if _, ok := schema.TypeDefs[personType].(*ComplexType); !ok {
		t.Error("imported personType not merged")
	}

	status := QName{Namespace: "http://example.com/main", Local: "statusType"}
	if _, ok := schema.TypeDefs[status].(*SimpleType); !ok {
		t.Error("included statusType not merged")
	}

	// Included document finished loading first
	names := schema.ElementNames()
	if len(names) != 2 || names[0] != "status" || names[1] != "document" {
		t.Errorf("ElementNames() = %v", names)
	}

	// Cross-document type reference resolves lazily
	doc := schema.LookupElement("document")
	group := doc.Type.(*ComplexType).Content.(*ModelGroup)
	author := group.Particles[1].(*ElementDecl)
	if _, ok := schema.ElementType(author).(*ComplexType); !ok {
		t.Errorf("author type did not resolve: %#v", schema.ElementType(author))
	}
}

func TestLoadDirDeterministic(t *testing.T) {
	dir := writeSchemaFiles(t, map[string]string{
		"b.xsd": `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:b">
  <xs:element name="Beta" type="xs:string"/>
  <xs:element name="Gamma" type="xs:string"/>
</xs:schema>`,
		"a.xsd": `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:a">
  <xs:element name="Alpha" type="xs:string"/>
</xs:schema>`,
		"readme.txt": "not a schema",
	})

	for i := 0; i < 3; i++ {
		schema, err := LoadSchemaDir(dir)
		if err != nil {
			t.Fatalf("LoadSchemaDir: %v", err)
		}
		if schema.TargetNamespace != "urn:a" {
			t.Errorf("target namespace = %s", schema.TargetNamespace)
		}
		got := strings.Join(schema.ElementNames(), ",")
		if got != "Alpha,Beta,Gamma" {
			t.Errorf("ElementNames() = %s", got)
		}
	}
}

func TestLoadDirEmpty(t *testing.T) {
	if _, err := LoadSchemaDir(t.TempDir()); err == nil {
		t.Error("expected error for a folder without schemas")
	}
}

func TestMissingImportWarns(t *testing.T) {
	dir := writeSchemaFiles(t, map[string]string{
		"main.xsd": `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:main">
  <xs:import namespace="urn:gone" schemaLocation="gone.xsd"/>
  <xs:element name="Root" type="xs:string"/>
</xs:schema>`,
	})

	var logs bytes.Buffer
	loader := NewSchemaLoader(dir)
	loader.Logger = slog.New(slog.NewTextHandler(&logs, nil))

	schema, err := loader.LoadSchemaWithImports("main.xsd")
	if err != nil {
		t.Fatalf("missing import should not be fatal: %v", err)
	}
	if schema.LookupElement("Root") == nil {
		t.Error("Root not loaded")
	}
	if !strings.Contains(logs.String(), "failed to import schema") {
		t.Errorf("expected import warning, got %q", logs.String())
	}
}

func TestMissingIncludeFails(t *testing.T) {
	dir := writeSchemaFiles(t, map[string]string{
		"main.xsd": `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:main">
  <xs:include schemaLocation="gone.xsd"/>
</xs:schema>`,
	})

	if _, err := LoadSchemaWithImports(filepath.Join(dir, "main.xsd")); err == nil {
		t.Error("expected error for missing include")
	}
}

func TestRemoteLoading(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/main.xsd":
			w.Write([]byte(mainSchema))
		case "/types.xsd":
			w.Write([]byte(typesSchema))
		case "/common.xsd":
			w.Write([]byte(commonSchema))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	loader := NewSchemaLoader("")
	if _, err := loader.LoadSchemaWithImports(server.URL + "/main.xsd"); err == nil {
		t.Fatal("remote loading should be disabled by default")
	}

	loader.AllowRemote = true
	schema, err := loader.LoadSchemaWithImports(server.URL + "/main.xsd")
	if err != nil {
		t.Fatalf("remote load: %v", err)
	}
	if _, ok := schema.TypeDefs[QName{Namespace: "http://example.com/types", Local: "personType"}]; !ok {
		t.Error("remote import not resolved relative to the base URL")
	}
}

func TestLoadSchemaFromString(t *testing.T) {
	dir := writeSchemaFiles(t, map[string]string{"types.xsd": typesSchema})

	schema, err := LoadSchemaFromString(`<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:inline">
  <xs:import namespace="http://example.com/types" schemaLocation="types.xsd"/>
  <xs:element name="Inline" type="xs:string"/>
</xs:schema>`, dir)
	if err != nil {
		t.Fatalf("LoadSchemaFromString: %v", err)
	}
	if schema.LookupElement("Inline") == nil {
		t.Error("Inline not loaded")
	}
	if _, ok := schema.TypeDefs[QName{Namespace: "http://example.com/types", Local: "emailType"}]; !ok {
		t.Error("import relative to baseDir not loaded")
	}
}
