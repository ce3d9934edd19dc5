/*
Package blob defines the opaque binary object and the factory that constructs it.

A Blob pairs an immutable byte sequence with a content-type tag. Blobs are created by a
Factory, which tries a ranked chain of construction capabilities:

1. The canonical Constructor.

2. An ordered list of legacy BuilderProviders, the first Available one being used.

Fallback from the canonical constructor to the builders only happens when the
constructor reports a bloberrors.CapabilityMismatchError (or is absent). Any other
failure, such as a bloberrors.PartTypeError for an unsupported part, is returned to the
caller unchanged. If no capability is usable, Create fails with
bloberrors.UnsupportedEnvironmentError.
*/
package blob
