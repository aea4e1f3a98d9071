package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByCode(t *testing.T) {
	cloned := Clone(ErrTransitionFailed, "수강 정보를 찾을 수 없습니다.")
	wrapped := fmt.Errorf("unenroll: %w", cloned)

	assert.True(t, errors.Is(wrapped, ErrTransitionFailed))
	assert.False(t, errors.Is(wrapped, ErrFetchFailed))
	assert.Equal(t, "수강 정보를 찾을 수 없습니다.", FromError(wrapped).Message)
}

func TestFromErrorDefaultsToInternal(t *testing.T) {
	err := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Nil(t, FromError(nil))
}
