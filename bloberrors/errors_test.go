package bloberrors

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"fmt"
	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/xerrors"
	"testing"
)

// Creates a consistent test error for multiple tests
func createTestError() *BlobError {
	sourceErr := xerrors.New("some source error")
	return MalformedInputError.New("test message", sourceErr)
}

func TestNewBlobError(test *testing.T) {
	assert := assert.New(test)

	blobErr := createTestError()

	assert.Equal(MalformedInputError, blobErr.ErrorType)
	assert.NotEqual(uuid.Nil, blobErr.ID)
	assert.Equal("test message", blobErr.Message)
	assert.EqualError(blobErr.Unwrap(), "some source error")

	assert.Equal("MalformedInputError", blobErr.Name())
	assert.Equal(2002, blobErr.Code())

	assert.True(blobErr.IsType(MalformedInputError))
	assert.False(blobErr.IsType(PartTypeError))
}

func TestBlobErrorMessage(test *testing.T) {
	blobErr := createTestError()

	assert.Equal(
		test, "MalformedInputError (2002) - test message", blobErr.Error(),
	)
}

func TestNewf(test *testing.T) {
	blobErr := PartTypeError.Newf(nil, "part %d has type %T", 2, 1.5)
	assert.Equal(test, "PartTypeError (2003) - part 2 has type float64", blobErr.Error())
}

func TestErrorsIs(test *testing.T) {
	assert := assert.New(test)

	blobErr := createTestError()
	wrapped := xerrors.Errorf("outer: %w", blobErr)

	assert.True(xerrors.Is(wrapped, MalformedInputError))
	assert.False(xerrors.Is(wrapped, HostIOFailure))

	var target *BlobError
	assert.True(xerrors.As(wrapped, &target))
	assert.Equal(blobErr.ID, target.ID)
}

func TestLogMessage(test *testing.T) {
	blobErr := createTestError()
	logMessage := blobErr.LogMessage()

	assert.Contains(
		test, logMessage, "MESSAGE: MalformedInputError (2002) - test message",
	)
	assert.Contains(test, logMessage, "ORIGINAL: some source error")
	assert.Contains(test, logMessage, "runtime/debug.Stack(")
}

func TestVerboseFormat(test *testing.T) {
	blobErr := createTestError()
	formatted := fmt.Sprintf("%+v", blobErr)
	assert.Contains(test, formatted, "MalformedInputError (2002) - test message")
	assert.Contains(test, formatted, "errors_test.go")
}

func TestErrorCodeIndex(test *testing.T) {
	assert := assert.New(test)

	assert.Len(ErrorTypeCodeIndex, len(ErrorList))
	for _, errorType := range ErrorList {
		assert.Equal(errorType, ErrorTypeCodeIndex[errorType.Code()])
	}
}
