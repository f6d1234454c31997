package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string   `json:"name" validate:"required"`
	Level string   `json:"level" validate:"oneof=critical high"`
	Share int      `json:"share" validate:"gte=0,lte=100"`
	Tags  []string `json:"tags" validate:"required,min=1"`
}

func TestStruct_Valid(t *testing.T) {
	require.NoError(t, Struct(sample{Name: "a", Level: "high", Share: 40, Tags: []string{"x"}}))
}

func TestStruct_ReportsEveryField(t *testing.T) {
	err := Struct(sample{Level: "low", Share: 101})
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 4)

	assert.Equal(t, "sample.name", verr.Fields[0].Field)
	assert.Equal(t, "required", verr.Fields[0].Tag)
	assert.Equal(t, "sample.name is required", verr.Fields[0].Message)
	assert.Equal(t, "sample.level must be one of: critical high", verr.Fields[1].Message)
	assert.Equal(t, "sample.share must be less than or equal to 100", verr.Fields[2].Message)
	assert.Equal(t, "sample.tags is required", verr.Fields[3].Message)

	assert.Contains(t, err.Error(), "; ")
}

func TestError_Empty(t *testing.T) {
	assert.Equal(t, "validation failed", (&Error{}).Error())
}
