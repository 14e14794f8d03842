package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_PreservesCodeAndChain(t *testing.T) {
	base := IOError("failed to open table", fs.ErrNotExist)
	wrapped := Wrap(base, "read abundance table")

	assert.Equal(t, CodeIOError, GetCode(wrapped))
	assert.True(t, stderrors.Is(wrapped, fs.ErrNotExist))
	assert.Equal(t, "read abundance table: failed to open table: file does not exist", wrapped.Error())
}

func TestWrap_PlainErrorBecomesInternal(t *testing.T) {
	wrapped := Wrapf(fmt.Errorf("boom"), "step %d", 3)
	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Equal(t, "step 3: boom", wrapped.Error())

	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Nil(t, Wrapf(nil, "ignored %s", "x"))
	assert.Nil(t, WithCode(CodeDomainError, nil))
}

func TestWithCode(t *testing.T) {
	sentinel := stderrors.New("vector sums to zero")
	err := WithCode(CodeDomainError, sentinel)

	assert.Equal(t, CodeDomainError, GetCode(err))
	assert.True(t, stderrors.Is(err, sentinel))
	assert.Equal(t, "UNKNOWN", GetCode(sentinel))
}

func TestWithCode_MessageNotDuplicated(t *testing.T) {
	err := WithCode(CodeInvalidInput, stderrors.New("bad index"))
	assert.Equal(t, "bad index", err.Error())
}
