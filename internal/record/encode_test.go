package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalLayout(t *testing.T) {
	records := []*Record{
		FromFields(Field{"ID", Number("1")}, Field{"word", String("xyz")}, Field{"note", String("x")}),
		FromFields(Field{"ID", Number("2")}, Field{"word", String("new")}),
	}

	got, err := Marshal(records, DefaultIndent)
	require.NoError(t, err)

	want := "[\n" +
		"    {\n" +
		"        \"ID\": 1,\n" +
		"        \"word\": \"xyz\",\n" +
		"        \"note\": \"x\"\n" +
		"    },\n" +
		"    {\n" +
		"        \"ID\": 2,\n" +
		"        \"word\": \"new\"\n" +
		"    }\n" +
		"]"
	assert.Equal(t, want, string(got))
}

func TestMarshalNestedAndEmpty(t *testing.T) {
	tests := []struct {
		name    string
		records []*Record
		indent  int
		want    string
	}{
		{
			name:    "no records",
			records: nil,
			indent:  4,
			want:    "[]",
		},
		{
			name:    "empty record",
			records: []*Record{New()},
			indent:  4,
			want:    "[\n    {}\n]",
		},
		{
			name: "nested containers",
			records: []*Record{FromFields(
				Field{"a", Array(Number("1"), Object(New()))},
				Field{"b", Object(nil)},
				Field{"c", Array()},
				Field{"d", Null()},
				Field{"e", Bool(false)},
			)},
			indent: 2,
			want: "[\n" +
				"  {\n" +
				"    \"a\": [\n" +
				"      1,\n" +
				"      {}\n" +
				"    ],\n" +
				"    \"b\": {},\n" +
				"    \"c\": [],\n" +
				"    \"d\": null,\n" +
				"    \"e\": false\n" +
				"  }\n" +
				"]",
		},
		{
			name:    "zero indent still breaks lines",
			records: []*Record{FromFields(Field{"ID", Number("7")})},
			indent:  0,
			want:    "[\n{\n\"ID\": 7\n}\n]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Marshal(tt.records, tt.indent)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestMarshalNegativeIndent(t *testing.T) {
	_, err := Marshal(nil, -1)
	assert.Error(t, err)
}

func TestMarshalStrings(t *testing.T) {
	r := FromFields(Field{"tëxt", String("ἀγάπη \"q\" \\ \n\t\r\b\f \x01\x1f   \x7f")})
	got, err := Marshal([]*Record{r}, 0)
	require.NoError(t, err)

	want := "[\n{\n\"tëxt\": \"ἀγάπη \\\"q\\\" \\\\ \\n\\t\\r\\b\\f \\u0001\\u001f   \x7f\"\n}\n]"
	assert.Equal(t, want, string(got))
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1", "1"},
		{"-0", "0"},
		{"-42", "-42"},
		{"12345678901234567890123", "12345678901234567890123"},
		{"1.0", "1.0"},
		{"1.50", "1.5"},
		{"-0.0", "-0.0"},
		{"1E5", "100000.0"},
		{"123.456", "123.456"},
		{"0.0001", "0.0001"},
		{"0.00001", "1e-05"},
		{"1e15", "1000000000000000.0"},
		{"1e16", "1e+16"},
		{"1.5e300", "1.5e+300"},
		{"1e400", "Infinity"},
		{"-1e400", "-Infinity"},
		{"Infinity", "Infinity"},
		{"-Infinity", "-Infinity"},
		{"NaN", "NaN"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := FormatNumber(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarshalRoundTripIsFixedPoint(t *testing.T) {
	input := `[{"ID":1,"v":1E5,"s":"café","n":[-0,2.50,{"k":"\u0001"}]},` +
		`{"ID":"x","big":1e400,"small":-1e400,"nan":NaN,"inf":Infinity}]`
	records, err := DecodeArray([]byte(input))
	require.NoError(t, err)

	first, err := Marshal(records, DefaultIndent)
	require.NoError(t, err)

	again, err := DecodeArray(first)
	require.NoError(t, err)
	second, err := Marshal(again, DefaultIndent)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Contains(t, string(first), `"big": Infinity,`)
	assert.Contains(t, string(first), `"small": -Infinity,`)
	assert.Contains(t, string(first), `"nan": NaN,`)
}
