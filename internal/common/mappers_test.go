package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertMapToInterface(t *testing.T) {
	type args struct {
		TypeName   string `json:"type_name"`
		MaxResults *int32 `json:"max_results,omitempty"`
	}

	var decoded args
	require.NoError(t, ConvertMapToInterface(map[string]any{
		"type_name":   "AWS::S3::Bucket",
		"max_results": float64(10),
		"unknown":     true,
	}, &decoded))
	assert.Equal(t, "AWS::S3::Bucket", decoded.TypeName)
	assert.Equal(t, int32(10), *decoded.MaxResults)

	var empty args
	require.NoError(t, ConvertMapToInterface(nil, &empty))
	assert.Empty(t, empty.TypeName)

	assert.Error(t, ConvertMapToInterface(map[string]any{"max_results": "ten"}, &decoded))
}

func TestStringOrNil(t *testing.T) {
	assert.Nil(t, StringOrNil(""))
	assert.Nil(t, StringOrNil("   "))
	assert.Equal(t, "role", *StringOrNil("role"))
	assert.Nil(t, EnumOrNil(""))
	assert.Equal(t, "CREATE", *EnumOrNil("CREATE"))
	assert.True(t, IsBlank(" \t"))
}
