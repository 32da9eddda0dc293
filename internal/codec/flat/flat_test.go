package flat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_SortsKeysAndQuotesNonIntegers(t *testing.T) {
	obj := Object{
		"number_of_payments": Int(1),
		"currency":           Text("USD"),
		"amount":             Text("24.99"),
		"flag":               Bool(true),
		"ratio":              Real(0.5),
		"gone":               Null(),
	}

	got := Marshal(obj)
	assert.Equal(t, `{"amount":"24.99","currency":"USD","flag":"true","gone":"null","number_of_payments":1,"ratio":"0.5"}`, got)
}

func TestMarshal_Empty(t *testing.T) {
	assert.Equal(t, "{}", Marshal(Object{}))
	assert.Equal(t, "{}", Marshal(nil))
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{`back\slash`, `back\\slash`},
		{`say "hi"`, `say \"hi\"`},
		{"line\nbreak", `line\nbreak`},
		{"cr\rtab\t", `cr\rtab\t`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Escape(tt.in))
		})
	}
}

func TestRoundTrip_EscapedText(t *testing.T) {
	text := "He said \"pay me\"\nthen left\t\\ for good\r"
	encoded := Marshal(Object{"custom_label": Text(text)})

	decoded, err := Unmarshal(encoded)
	require.NoError(t, err)

	label, ok := decoded["custom_label"].AsText()
	require.True(t, ok)
	assert.Equal(t, text, label)
}

func TestRoundTrip_CommasAndColonsInsideStrings(t *testing.T) {
	obj := Object{
		"custom_label":         Text("Rent, March: flat 4"),
		"change_indicator_url": Text("https://shop.example:8443/a,b"),
		"amount":               Text("1,250.00"),
	}
	decoded, err := Unmarshal(Marshal(obj))
	require.NoError(t, err)
	assert.Equal(t, obj, decoded)
}

func TestUnmarshal_ValueTyping(t *testing.T) {
	input := `{"a":null,"b":TRUE,"c":false,"d":30,"e":-7,"f":24.99,"g":"30","h":bare token,"i":1.,"j":""}`

	obj, err := Unmarshal(input)
	require.NoError(t, err)

	assert.Equal(t, KindNull, obj["a"].Kind())
	assert.True(t, obj["b"].Equal(Bool(true)))
	assert.True(t, obj["c"].Equal(Bool(false)))
	assert.True(t, obj["d"].Equal(Int(30)))
	assert.True(t, obj["e"].Equal(Int(-7)))
	assert.True(t, obj["f"].Equal(Real(24.99)))
	assert.True(t, obj["g"].Equal(Text("30")))
	assert.True(t, obj["h"].Equal(Text("bare token")))
	assert.True(t, obj["i"].Equal(Text("1.")))
	assert.True(t, obj["j"].Equal(Text("")))
}

func TestUnmarshal_HugeIntegerBecomesReal(t *testing.T) {
	obj, err := Unmarshal(`{"n":99999999999999999999}`)
	require.NoError(t, err)
	assert.Equal(t, KindReal, obj["n"].Kind())
}

func TestUnmarshal_Whitespace(t *testing.T) {
	obj, err := Unmarshal(" {\n \"a\" : 1 ,\t\"b\" : \"x\" } \n")
	require.NoError(t, err)
	assert.True(t, obj["a"].Equal(Int(1)))
	assert.True(t, obj["b"].Equal(Text("x")))
}

func TestUnmarshal_UnicodeEscape(t *testing.T) {
	obj, err := Unmarshal(`{"a":"caf\u00e9 \/ ok"}`)
	require.NoError(t, err)
	assert.Equal(t, "café / ok", obj.Text("a"))
}

func TestUnmarshal_RejectsNesting(t *testing.T) {
	for _, input := range []string{
		`{"a":{"b":1}}`,
		`{"a":[1,2]}`,
	} {
		t.Run(input, func(t *testing.T) {
			_, err := Unmarshal(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNested))

			var syntaxErr *SyntaxError
			require.True(t, errors.As(err, &syntaxErr))
			assert.Equal(t, 5, syntaxErr.Offset)
		})
	}
}

func TestUnmarshal_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no brace", `"a":1`},
		{"unterminated object", `{"a":1`},
		{"unterminated string", `{"a":"oops}`},
		{"missing colon", `{"a" 1}`},
		{"missing value", `{"a":}`},
		{"missing key", `{:1}`},
		{"trailing data", `{"a":1} extra`},
		{"bad escape", `{"a":"\q"}`},
		{"short unicode", `{"a":"\u12"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal(tt.input)
			require.Error(t, err)
			var syntaxErr *SyntaxError
			assert.True(t, errors.As(err, &syntaxErr))
			assert.False(t, errors.Is(err, ErrNested))
		})
	}
}

func TestUnmarshal_EmptyObject(t *testing.T) {
	obj, err := Unmarshal("{ }")
	require.NoError(t, err)
	assert.Empty(t, obj)
}

func TestValue_IntCoercion(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want int64
		ok   bool
	}{
		{"int", Int(30), 30, true},
		{"integral real", Real(30), 30, true},
		{"fractional real", Real(30.5), 0, false},
		{"numeric text", Text("12"), 12, true},
		{"non numeric text", Text("abc"), 0, false},
		{"null", Null(), 0, false},
		{"bool", Bool(true), 0, false},
		{"huge real", Real(1e30), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.in.Int()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestObject_TextAndKeys(t *testing.T) {
	obj := Object{"b": Int(2), "a": Real(1.25), "c": Text("x")}
	assert.Equal(t, []string{"a", "b", "c"}, obj.Keys())
	assert.Equal(t, "1.25", obj.Text("a"))
	assert.Equal(t, "2", obj.Text("b"))
	assert.Equal(t, "", obj.Text("missing"))
}
