package dtsgen

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleXML = `
<package>
  <classdef name="PageItem" dynamic="true">
    <shortdesc>Any object on a page.</shortdesc>
    <elements type="instance">
      <property name="name"><datatype><type>String</type></datatype></property>
      <method name="remove"><shortdesc>Deletes the item.</shortdesc></method>
    </elements>
  </classdef>
  <classdef name="TextFrame" dynamic="true">
    <superclass>PageItem</superclass>
    <elements type="instance">
      <property name="name"><datatype><type>String</type></datatype></property>
      <property name="contents"><datatype><type>String</type></datatype></property>
      <method name="fit">
        <parameters>
          <parameter name="bounds"><datatype><type>Array of Reals</type></datatype></parameter>
        </parameters>
      </method>
    </elements>
  </classdef>
  <classdef name="AnchorPosition" enumeration="true">
    <elements type="class">
      <property name="TOP_LEFT">
        <datatype><type>AnchorPosition</type><value>1095716453</value></datatype>
      </property>
    </elements>
  </classdef>
</package>`

func docFromString(t *testing.T, xml string) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	return doc
}

func blobOf(strs ...string) []byte {
	var buf bytes.Buffer
	for _, s := range strs {
		buf.WriteString(s)
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

func TestConvertWithoutBlobs(t *testing.T) {
	out, err := Convert(docFromString(t, sampleXML), nil, nil)
	require.NoError(t, err)

	assert.Contains(t, out, "declare interface PageItem {")
	assert.Contains(t, out, "declare interface TextFrame extends PageItem {")
	assert.Contains(t, out, "declare enum AnchorPosition {")
	assert.Contains(t, out, "fit(bounds: number[]): void;")
}

func TestConvertPrunesInheritedMembers(t *testing.T) {
	out, err := Convert(docFromString(t, sampleXML), nil, nil)
	require.NoError(t, err)

	// TextFrame.name is declared by PageItem; only contents survives.
	frame := out[strings.Index(out, "declare interface TextFrame"):]
	assert.NotContains(t, frame, "name: string;")
	assert.Contains(t, frame, "contents: string;")
}

func TestConvertSortsOutput(t *testing.T) {
	out, err := Convert(docFromString(t, sampleXML), nil, nil)
	require.NoError(t, err)

	anchor := strings.Index(out, "declare enum AnchorPosition")
	page := strings.Index(out, "declare interface PageItem")
	frame := strings.Index(out, "declare interface TextFrame")
	require.True(t, anchor >= 0 && page >= 0 && frame >= 0)
	assert.Less(t, anchor, page)
	assert.Less(t, page, frame)

	// Within PageItem, the property precedes the method.
	pageBody := out[page:frame]
	assert.Less(t, strings.Index(pageBody, "name: string;"), strings.Index(pageBody, "remove(): void;"))
}

func TestConvertIsDeterministic(t *testing.T) {
	blobs := []Blob{{Name: "app.dll", Bytes: blobOf(
		"bounds: The bounds to fit to, as four points",
		"fit",
	)}}

	first, err := Convert(docFromString(t, sampleXML), blobs, nil)
	require.NoError(t, err)
	second, err := Convert(docFromString(t, sampleXML), blobs, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestConvertRecoversFromBlobs(t *testing.T) {
	blobs := []Blob{{Name: "app.dll", Bytes: blobOf(
		"bounds: The bounds to fit to",
		"fit",
	)}}

	out, err := Convert(docFromString(t, sampleXML), blobs, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "@param bounds - The bounds to fit to")
}

func TestConvertEmptyBlobsMatchesPatternFreeBlobs(t *testing.T) {
	without, err := Convert(docFromString(t, sampleXML), nil, nil)
	require.NoError(t, err)

	noise := []Blob{{Name: "app.dll", Bytes: blobOf("no patterns in here at all")}}
	with, err := Convert(docFromString(t, sampleXML), noise, nil)
	require.NoError(t, err)

	assert.Equal(t, without, with)
}

func TestConvertAppliesTypeMappings(t *testing.T) {
	cfg := &Config{TypeMappings: map[string]string{"string": "string | File"}}
	out, err := Convert(docFromString(t, sampleXML), nil, cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "contents: string | File;")
}

func TestConvertHeader(t *testing.T) {
	cfg := &Config{Header: "// ExtendScript API declarations."}
	out, err := Convert(docFromString(t, sampleXML), nil, cfg)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "// ExtendScript API declarations.\n"))
}

func TestConvertStructuralErrorIsFatal(t *testing.T) {
	doc := docFromString(t, `<package><classdef name="Mystery"/></package>`)
	_, err := Convert(doc, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown_definition")
}

func TestConvertInheritanceCycleTerminates(t *testing.T) {
	cyclic := `
<package>
  <classdef name="A" dynamic="true">
    <superclass>B</superclass>
    <elements type="instance">
      <property name="x"><datatype><type>Number</type></datatype></property>
    </elements>
  </classdef>
  <classdef name="B" dynamic="true">
    <superclass>A</superclass>
    <elements type="instance">
      <property name="y"><datatype><type>Number</type></datatype></property>
    </elements>
  </classdef>
</package>`
	out, err := Convert(docFromString(t, cyclic), nil, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "declare interface A")
	assert.Contains(t, out, "declare interface B")
}

func TestLoadConfig(t *testing.T) {
	path := t.TempDir() + "/overrides.toml"
	content := `
header = "// header"
indent = "    "

[type_mappings]
Swatch = "SwatchGroup"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "// header", cfg.Header)
	assert.Equal(t, "    ", cfg.Indent)
	assert.Equal(t, "SwatchGroup", cfg.TypeMappings["Swatch"])
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	assert.Error(t, (&Config{Indent: strings.Repeat(" ", 9)}).Validate())
	assert.Error(t, (&Config{TypeMappings: map[string]string{"Swatch": ""}}).Validate())
	assert.NoError(t, (&Config{Indent: "\t"}).Validate())
}
