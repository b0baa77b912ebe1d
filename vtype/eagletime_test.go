package vtype_test

import (
	"testing"

	"github.com/nspiker/vsf/format"
	"github.com/nspiker/vsf/vtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEagleTimeUnsignedRoundTrip(t *testing.T) {
	et := vtype.EagleTime{Sub: format.EagleTimeUnsigned, Unsigned: 1234567890}
	got, _ := roundTrip(t, et)
	assert.Equal(t, et, got)
}

func TestEagleTimeSignedRoundTrip(t *testing.T) {
	et := vtype.EagleTime{Sub: format.EagleTimeSigned, Signed: -42}
	got, _ := roundTrip(t, et)
	assert.Equal(t, et, got)
}

func TestEagleTimeFloatRoundTripExplicitWidth(t *testing.T) {
	et64 := vtype.EagleTime{Sub: format.EagleTimeFloat, FloatWidth: format.Size64, Float64: 123.456}
	got, _ := roundTrip(t, et64)
	assert.Equal(t, et64, got)

	et32 := vtype.EagleTime{Sub: format.EagleTimeFloat, FloatWidth: format.Size32, Float32: 1.5}
	got, n := roundTrip(t, et32)
	require.Equal(t, 7, n)
	assert.Equal(t, et32, got)
}
