package bloberrors

// Returns an error type definition. Each definition should only need to be declared
// once, ensuring consistent error codes and names for the error type.
func NewErrorType(name string, code int) *ErrorType {
	return &ErrorType{
		name: name,
		code: code,
	}
}

// No usable host capability was found for blob construction, object-URL registration
// or content reading.
var UnsupportedEnvironmentError = NewErrorType("UnsupportedEnvironmentError", 2000)

// Image load or read primitive failure reported by the host.
var HostIOFailure = NewErrorType("HostIOFailure", 2001)

// Input does not have the expected structure, such as a data-URL missing its
// content-type or base64 segment.
var MalformedInputError = NewErrorType("MalformedInputError", 2002)

// A blob part is not a supported type.
var PartTypeError = NewErrorType("PartTypeError", 2003)

// A capability exists in name but cannot serve the call. This is the only error
// class that triggers a capability fallback.
var CapabilityMismatchError = NewErrorType("CapabilityMismatchError", 2004)

// Structured content could not be encoded into or decoded from a blob.
var EncodingError = NewErrorType("EncodingError", 2005)

// List of default ErrorType definitions.
var ErrorList = [6]*ErrorType{
	UnsupportedEnvironmentError,
	HostIOFailure,
	MalformedInputError,
	PartTypeError,
	CapabilityMismatchError,
	EncodingError,
}

// Used to make ErrorTypeCodeIndex.
func makeDefaultErrorCodeIndex() map[int]*ErrorType {
	index := make(map[int]*ErrorType)
	for _, errorType := range ErrorList {
		index[errorType.code] = errorType
	}
	return index
}

// Code:*ErrorType indexing of default errors.
var ErrorTypeCodeIndex = makeDefaultErrorCodeIndex()
