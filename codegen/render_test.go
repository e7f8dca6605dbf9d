package codegen

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderRoot(t *testing.T, body, root string, settings Settings) string {
	t.Helper()
	schema := loadSchema(t, schemaDoc(body))

	cm, err := NewBuilder(schema, nil).Generate(root)
	require.NoError(t, err)

	renderer, err := NewRenderer(settings)
	require.NoError(t, err)

	roots := []*ClassModel{cm}
	plan := PlanOutput(roots, CountReferences(roots))
	require.Len(t, plan.Units, 1)

	out, err := renderer.RenderUnit(plan.Units[0])
	require.NoError(t, err)
	return out
}

func TestRenderPoint(t *testing.T) {
	got := renderRoot(t, pointSchema, "Point", DefaultSettings("Geo.Models"))

	want := `#pragma warning disable CS1591
using System.ComponentModel.DataAnnotations;
using System.Text.Json.Serialization;
using System.Xml.Serialization;

namespace Geo.Models;

/// <summary>
/// A point on the grid.
/// </summary>
[XmlType(AnonymousType = true, Namespace = "urn:test")]
[XmlRoot(Namespace = "urn:test", IsNullable = false)]
public class Point
{
    /// <remarks>
    /// MinInclusive: -2147483648
    /// MaxInclusive: 2147483647
    /// </remarks>
    [XmlElement(DataType = "int")]
    [JsonPropertyName("x")]
    public required int X { get; set; }

    /// <remarks>
    /// MinInclusive: -2147483648
    /// MaxInclusive: 2147483647
    /// </remarks>
    [XmlElement(DataType = "int")]
    [JsonPropertyName("y")]
    public required int Y { get; set; }
}
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RenderUnit() mismatch (-want +got):\n%s", diff)
	}
	assert.NotContains(t, got, "Specified")
	assert.NotContains(t, got, "StringLength")
}

const contactSchema = `
<xs:element name="Contact">
  <xs:complexType>
    <xs:sequence>
      <xs:element name="Name">
        <xs:simpleType>
          <xs:restriction base="xs:string">
            <xs:minLength value="1"/>
            <xs:maxLength value="35"/>
          </xs:restriction>
        </xs:simpleType>
      </xs:element>
      <xs:element name="Email" type="xs:string" minOccurs="0"/>
      <xs:element name="Phone" type="xs:string" minOccurs="0" maxOccurs="unbounded"/>
    </xs:sequence>
  </xs:complexType>
</xs:element>`

func TestRenderOptionalCompanion(t *testing.T) {
	got := renderRoot(t, contactSchema, "Contact", DefaultSettings("Crm"))

	assert.Contains(t, got, `    [XmlElement]
    [StringLength(35, MinimumLength = 1)]
    [JsonPropertyName("name")]
    public required string Name { get; set; }
`)
	assert.Contains(t, got, `    [XmlElement]
    [JsonPropertyName("email")]
    public string? Email { get; set; }
    [XmlIgnore]
    [JsonIgnore]
    public bool EmailSpecified => Email != null;
`)
	assert.Contains(t, got, `    public List<string>? Phone { get; set; }
    [XmlIgnore]
    [JsonIgnore]
    public bool PhoneSpecified => Phone != null;
`)
	assert.NotContains(t, got, "NameSpecified")
}

func TestRenderWithoutValidation(t *testing.T) {
	settings := DefaultSettings("Crm")
	settings.EmitValidationAnnotations = false

	got := renderRoot(t, contactSchema, "Contact", settings)

	assert.NotContains(t, got, "System.ComponentModel.DataAnnotations")
	assert.NotContains(t, got, "StringLength")
	assert.Contains(t, got, "using System.Text.Json.Serialization;")
	assert.Contains(t, got, "MaxLength: 35", "remarks do not depend on validation annotations")
}

func TestRenderWithoutJSONHints(t *testing.T) {
	settings := DefaultSettings("Crm")
	settings.EmitJSONHints = false

	got := renderRoot(t, contactSchema, "Contact", settings)

	assert.NotContains(t, got, "System.Text.Json")
	assert.NotContains(t, got, "JsonPropertyName")
	assert.NotContains(t, got, "JsonIgnore")
	assert.Contains(t, got, `    public string? Email { get; set; }
    [XmlIgnore]
    public bool EmailSpecified => Email != null;
`)
}

func TestRenderHeaderOrder(t *testing.T) {
	got := renderRoot(t, contactSchema, "Contact", Settings{Namespace: "Crm"})

	assert.True(t, strings.HasPrefix(got, "#pragma warning disable CS1591\nusing System.Xml.Serialization;\n\nnamespace Crm;\n\n"), got)
}

func TestRenderUnitInlinesClasses(t *testing.T) {
	got := renderRoot(t, `
<xs:element name="Envelope">
  <xs:complexType>
    <xs:sequence>
      <xs:element name="Header">
        <xs:complexType>
          <xs:sequence>
            <xs:element name="Sender" type="xs:string"/>
          </xs:sequence>
        </xs:complexType>
      </xs:element>
    </xs:sequence>
  </xs:complexType>
</xs:element>`, "Envelope", DefaultSettings("Mail"))

	envelope := strings.Index(got, "public class Envelope")
	header := strings.Index(got, "public class Header")
	require.NotEqual(t, -1, envelope)
	require.NotEqual(t, -1, header)
	assert.Less(t, envelope, header)
	assert.Equal(t, 1, strings.Count(got, "[XmlRoot("), "only the top-level element is a document root")
	assert.Contains(t, got, "    public required Header Header { get; set; }\n")
}

func TestRenderChoiceRemarks(t *testing.T) {
	got := renderRoot(t, `
<xs:element name="Payment">
  <xs:complexType>
    <xs:choice>
      <xs:element name="Card" type="xs:string"/>
      <xs:element name="Iban" type="xs:string"/>
    </xs:choice>
  </xs:complexType>
</xs:element>`, "Payment", DefaultSettings("Pay"))

	assert.Equal(t, 2, strings.Count(got, "/// "+choiceRemark))
	assert.Contains(t, got, "public bool CardSpecified => Card != null;")
	assert.Contains(t, got, "public bool IbanSpecified => Iban != null;")
}

func TestWriteDocEscapes(t *testing.T) {
	var sb strings.Builder
	writeDoc(&sb, "    ", "summary", "a < b\nsecond & last")

	assert.Equal(t, "    /// <summary>\n    /// a &lt; b\n    /// second &amp; last\n    /// </summary>\n", sb.String())
}

func TestCleanDocumentation(t *testing.T) {
	assert.Equal(t, "", cleanDocumentation("  \n "))
	assert.Equal(t, "Keep <this> text", cleanDocumentation("Keep &lt;this&gt; text"))
	assert.Equal(t, "one\ntwo", cleanDocumentation("\n   one  \n\t two\n"))
	assert.Equal(t, "bold", cleanDocumentation("<em>bold</em>"))
}
