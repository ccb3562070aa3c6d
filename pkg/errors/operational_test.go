package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errMissing = stderrors.New("source not found")

func TestNewOperationalError_NilCause(t *testing.T) {
	assert.Nil(t, NewOperationalError("opening source", "a.csv", nil))
	assert.Nil(t, NewOperationalErrorWithAttrs("opening source", "a.csv", nil, map[string]interface{}{"k": 1}))
}

func TestOperationalError_Error(t *testing.T) {
	err := NewOperationalError("opening source", "data/a.csv", errMissing)
	assert.Equal(t, "opening source data/a.csv: source not found", err.Error())
	assert.False(t, err.Timestamp.IsZero())

	withAttrs := NewOperationalErrorWithAttrs("reading source", "b.txt", errMissing, map[string]interface{}{
		"record": 4,
		"line":   7,
	})
	assert.Equal(t, "reading source b.txt: source not found (line=7, record=4)", withAttrs.Error())

	var nilErr *OperationalError
	assert.Equal(t, "<nil OperationalError>", nilErr.Error())
	assert.Nil(t, nilErr.Unwrap())
}

func TestOperationalError_Unwrap(t *testing.T) {
	err := NewOperationalError("opening source", "a.csv", errMissing)

	assert.ErrorIs(t, err, errMissing)

	var opErr *OperationalError
	assert.True(t, stderrors.As(error(err), &opErr))
	assert.Equal(t, "a.csv", opErr.Source)
}
