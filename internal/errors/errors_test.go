package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codedError struct {
	code string
}

func (e *codedError) Error() string {
	return "coded: " + e.code
}

func TestWrap(t *testing.T) {
	base := New("row missing")

	wrapped := Wrapf(Wrap(base, "find job"), "request %d", 7)
	assert.True(t, Is(wrapped, base))
	assert.Equal(t, "request 7: find job: row missing", wrapped.Error())

	assert.NoError(t, Wrap(nil, "nothing"))
	assert.NoError(t, WithStack(nil))
}

func TestWrap_RecordsStack(t *testing.T) {
	err := Wrap(New("boom"), "save")

	assert.Contains(t, fmt.Sprintf("%+v", err), "TestWrap_RecordsStack")
}

func TestAsType(t *testing.T) {
	err := Wrap(&codedError{code: "CATEGORY_IN_USE"}, "delete category")

	coded, ok := AsType[*codedError](err)
	require.True(t, ok)
	assert.Equal(t, "CATEGORY_IN_USE", coded.code)

	var target *codedError
	assert.True(t, As(err, &target))

	_, ok = AsType[*codedError](Errorf("plain %s", "error"))
	assert.False(t, ok)
}
