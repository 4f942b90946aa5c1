package strip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/ledstripd/internal/errors"
)

func TestClampByte(t *testing.T) {
	assert.Equal(t, uint8(0), ClampByte(-5))
	assert.Equal(t, uint8(0), ClampByte(0))
	assert.Equal(t, uint8(77), ClampByte(77))
	assert.Equal(t, uint8(255), ClampByte(255))
	assert.Equal(t, uint8(255), ClampByte(9999))
}

func TestClampNumber(t *testing.T) {
	assert.Equal(t, uint8(10), ClampNumber(10.7))
	assert.Equal(t, uint8(0), ClampNumber(-0.5))
	assert.Equal(t, uint8(0), ClampNumber(-300))
	assert.Equal(t, uint8(255), ClampNumber(255.9))
	assert.Equal(t, uint8(255), ClampNumber(1e20))
}

func TestDecodeColor(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		want      ColorValue
		malformed bool
		missing   bool
	}{
		{name: "valid", body: `{"r":255,"g":0,"b":128}`, want: ColorValue{255, 0, 128}},
		{name: "extra keys ignored", body: `{"r":1,"g":2,"b":3,"w":4}`, want: ColorValue{1, 2, 3}},
		{name: "clamped", body: `{"r":-10,"g":300,"b":255}`, want: ColorValue{0, 255, 255}},
		{name: "missing b", body: `{"r":1,"g":2}`, missing: true},
		{name: "null g", body: `{"r":1,"g":null,"b":3}`, missing: true},
		{name: "empty object", body: `{}`, missing: true},
		{name: "null body", body: `null`, missing: true},
		{name: "truncated", body: `{"r":255`, malformed: true},
		{name: "empty body", body: ``, malformed: true},
		{name: "string channel", body: `{"r":"red","g":0,"b":0}`, malformed: true},
		{name: "fractional channels truncated", body: `{"r":10.7,"g":-0.5,"b":254.99}`, want: ColorValue{10, 0, 254}},
		{name: "exponent clamped", body: `{"r":1e3,"g":2E1,"b":-1e2}`, want: ColorValue{255, 20, 0}},
		{name: "huge integer clamped", body: `{"r":99999999999999999999,"g":0,"b":-99999999999999999999}`, want: ColorValue{255, 0, 0}},
		{name: "array body", body: `[1,2,3]`, missing: true},
		{name: "empty array body", body: `[]`, missing: true},
		{name: "bare number body", body: `42`, missing: true},
		{name: "bool channel", body: `{"r":true,"g":0,"b":0}`, malformed: true},
		{name: "nested object channel", body: `{"r":{"v":1},"g":0,"b":0}`, malformed: true},
		{name: "trailing garbage", body: `{"r":1,"g":2,"b":3}x`, malformed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Decode[ColorRequest]([]byte(tt.body))
			if tt.malformed {
				require.Error(t, err)
				assert.True(t, errors.IsMalformedPayload(err), err)
				return
			}
			require.NoError(t, err)

			v, err := req.Value()
			if tt.missing {
				require.Error(t, err)
				assert.True(t, errors.IsMissingField(err), err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestDecodeBrightness(t *testing.T) {
	req, err := Decode[BrightnessRequest]([]byte(`{"value":300}`))
	require.NoError(t, err)
	v, err := req.Property()
	require.NoError(t, err)
	assert.Equal(t, BrightnessValue(255), v)

	req, err = Decode[BrightnessRequest]([]byte(`{"level":3}`))
	require.NoError(t, err)
	_, err = req.Property()
	assert.True(t, errors.IsMissingField(err))

	_, err = Decode[BrightnessRequest]([]byte(`{"value":true}`))
	assert.True(t, errors.IsMalformedPayload(err))

	_, err = Decode[BrightnessRequest]([]byte(`{"value":"128"}`))
	assert.True(t, errors.IsMalformedPayload(err))
}

func TestDecodeBrightness_Numbers(t *testing.T) {
	tests := []struct {
		body string
		want BrightnessValue
	}{
		{`{"value":1e3}`, 255},
		{`{"value":99999999999999999999}`, 255},
		{`{"value":-0.5}`, 0},
		{`{"value":127.9}`, 127},
		{`{"value":-1e3}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			req, err := Decode[BrightnessRequest]([]byte(tt.body))
			require.NoError(t, err)
			v, err := req.Property()
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestDecode_NonObjectBodyIsMissingKeys(t *testing.T) {
	for _, body := range []string{`[]`, `[1,2,3]`, `"value"`, `7`, `true`} {
		req, err := Decode[BrightnessRequest]([]byte(body))
		require.NoError(t, err, body)
		_, err = req.Property()
		assert.True(t, errors.IsMissingField(err), body)

		p, err := Decode[PowerRequest]([]byte(body))
		require.NoError(t, err, body)
		_, err = p.Property()
		assert.True(t, errors.IsMissingField(err), body)
	}
}

func TestDecodePower(t *testing.T) {
	req, err := Decode[PowerRequest]([]byte(`{"state":false}`))
	require.NoError(t, err)
	v, err := req.Property()
	require.NoError(t, err)
	assert.Equal(t, PowerValue(false), v)

	req, err = Decode[PowerRequest]([]byte(`{"state":null}`))
	require.NoError(t, err)
	_, err = req.Property()
	assert.True(t, errors.IsMissingField(err))

	_, err = Decode[PowerRequest]([]byte(`{"state":1}`))
	assert.True(t, errors.IsMalformedPayload(err))
}

func TestPropertyValues(t *testing.T) {
	s := DefaultState()

	ColorValue{R: 1, G: 2, B: 3}.Apply(&s)
	BrightnessValue(9).Apply(&s)
	PowerValue(false).Apply(&s)
	assert.Equal(t, State{R: 1, G: 2, B: 3, Brightness: 9, Power: false}, s)

	assert.Equal(t, PropertyColor, ColorValue{}.PropertyName())
	assert.Equal(t, PropertyBrightness, BrightnessValue(0).PropertyName())
	assert.Equal(t, PropertyPower, PowerValue(true).PropertyName())
	assert.Equal(t, [3]uint8{1, 2, 3}, ColorValue{1, 2, 3}.Value())
	assert.Equal(t, uint8(9), BrightnessValue(9).Value())
	assert.Equal(t, true, PowerValue(true).Value())
}
