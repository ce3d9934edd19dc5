package bloberrors

import (
	"fmt"
	uuid "github.com/satori/go.uuid"
	"golang.org/x/xerrors"
	"runtime/debug"
	"strconv"
)

/*
ErrorType defines a kind of error the transcoding layer can return.

Each ErrorType should have a unique Name and Code. Codes 2000-2999 are reserved for the
default definitions in this package.

Since types are declared as pointers, to protect against accidental mutation of the
error type by other packages, the underlying fields of this struct are private and
accessed through functions. Define new error types using NewErrorType()
*/
type ErrorType struct {
	// Unique human-readable name of the error type.
	name string

	// Unique number to identify the error type.
	code int
}

// Returns a new blob error of this type.
func (errorType *ErrorType) New(message string, source error) *BlobError {
	blobError := BlobError{
		ErrorType:   errorType,
		Message:     message,
		ID:          uuid.NewV4(),
		sourceErr:   source,
		sourceStack: debug.Stack(),
		frame:       xerrors.Caller(1),
	}
	return &blobError
}

// Returns a new blob error of this type with a formatted message.
func (errorType *ErrorType) Newf(
	source error, format string, args ...interface{},
) *BlobError {
	blobError := errorType.New(fmt.Sprintf(format, args...), source)
	blobError.frame = xerrors.Caller(1)
	return blobError
}

// Unique human-readable name of the error type.
func (errorType *ErrorType) Name() string {
	return errorType.name
}

// Unique number to identify the error type.
func (errorType *ErrorType) Code() int {
	return errorType.code
}

// Allows the error type definition itself to also be a valid error for things like
// testing error equality.
func (errorType *ErrorType) Error() string {
	return errorType.name + " (" + strconv.Itoa(errorType.code) + ")"
}

// Used to return a specific error instance.
type BlobError struct {
	// The type of error we are returning.
	*ErrorType

	// A message detailing what caused the error.
	Message string

	// An id for the error being returned.
	ID uuid.UUID

	// If this error was returned because of another error, the original error is stored
	// here.
	sourceErr error

	// The debug.Stack() from where this error was instantiated.
	sourceStack []byte

	// The xerrors.Frame from where this error was instantiated.
	frame xerrors.Frame
}

// Returns true if the underlying type of this error is the same as errorType.
func (blobError *BlobError) IsType(errorType *ErrorType) bool {
	return blobError.ErrorType.Error() == errorType.Error()
}

// Is lets xerrors.Is match a BlobError against its ErrorType.
func (blobError *BlobError) Is(target error) bool {
	errorType, ok := target.(*ErrorType)
	if !ok {
		return false
	}
	return blobError.IsType(errorType)
}

// Error string to conform to builtin error interface.
func (blobError *BlobError) Error() string {
	return blobError.ErrorType.Error() + " - " + blobError.Message
}

// Implements xerrors.Wrapper.
func (blobError *BlobError) Unwrap() error {
	return blobError.sourceErr
}

// Implements xerrors.Formatter so "%+v" prints the creation frame.
func (blobError *BlobError) Format(state fmt.State, verb rune) {
	xerrors.FormatError(blobError, state, verb)
}

// Implements xerrors.Formatter.
func (blobError *BlobError) FormatError(printer xerrors.Printer) error {
	printer.Print(blobError.Error())
	blobError.frame.Format(printer)
	return blobError.sourceErr
}

// More verbose error message that includes a debug.Stack() and source error
// information, for logging.
func (blobError *BlobError) LogMessage() string {
	loggerMessage := fmt.Sprint(
		"\nMESSAGE: ",
		blobError.Error(),
		"\nORIGINAL: ",
		blobError.sourceErr,
		"\nSTACK:\n",
		string(blobError.sourceStack),
	)
	return loggerMessage
}
