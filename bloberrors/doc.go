/*
Blob error model definition and default transcoding errors.

Every failure raised by the transcoding layer itself is reported through a consistent
error model so callers can branch on the kind of failure without string matching.

This package defines two main objects for handling errors:

• ErrorType defines an error type.

• BlobError is an instance of an error which contains an ErrorType.

Default ErrorType Variables

Several pointers to ErrorType definitions are included in this package. A BlobError
matches its ErrorType through xerrors.Is / errors.Is:

	if xerrors.Is(err, bloberrors.MalformedInputError) {
		...
	}
*/
package bloberrors
