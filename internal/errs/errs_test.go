package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "", ErrorCode(nil))
	assert.Equal(t, ENOTFOUND, ErrorCode(Errorf(ENOTFOUND, "user %q not found", "bob")))
	assert.Equal(t, EINVALID, ErrorCode(fmt.Errorf("wrapped: %w", Invalid(nil))))
	assert.Equal(t, EINTERNAL, ErrorCode(errors.New("boom")))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, `user "bob" not found`, ErrorMessage(Errorf(ENOTFOUND, "user %q not found", "bob")))
	assert.Equal(t, "Internal error.", ErrorMessage(errors.New("boom")))
}

func TestFieldErrors(t *testing.T) {
	err := fmt.Errorf("create post: %w", Invalid(map[string][]string{"text": {"This field is required."}}))
	assert.Equal(t, []string{"This field is required."}, FieldErrors(err)["text"])
	assert.Nil(t, FieldErrors(errors.New("boom")))
}
