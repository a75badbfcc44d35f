package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf_WrappedError(t *testing.T) {
	base := Network("Could not reach the registry.", errors.New("dial tcp: timeout"))
	wrapped := fmt.Errorf("check failed: %w", base)

	assert.Equal(t, KindNetwork, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindNetwork))
	assert.False(t, IsKind(wrapped, KindInput))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestError_UnwrapKeepsCause(t *testing.T) {
	cause := errors.New("execution reverted")
	err := PublishPartial("Signed, but publishing failed.", cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "publish_partial")
	assert.Contains(t, err.Error(), "execution reverted")
}

func TestUserMessage(t *testing.T) {
	err := Configuration("Registry address is malformed.", nil)
	assert.Equal(t, "Registry address is malformed. "+defaultNextSteps[KindConfiguration], UserMessage(err))

	err = Input("Please enter the bank's short code.", nil).WithNextStep("")
	assert.Equal(t, "Please enter the bank's short code.", UserMessage(err))
}
