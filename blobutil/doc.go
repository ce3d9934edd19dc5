/*
Package blobutil is the single entry point of the binary transcoding layer.

A Toolkit converts between binary-strings, byte slices, base64 text, blobs, data-URLs
and object-URLs, and renders image references into blobs, all against the host
capabilities of a host.Environment.

Quick Start

	toolkit, err := blobutil.Default()
	if err != nil {
		return err
	}

	created, err := toolkit.BinaryStringToBlob("abc", "text/plain")
	if err != nil {
		return err
	}

	text, err := toolkit.BlobToBinaryString(created).Await(ctx)

Asynchronous operations return a *future.Future. Await it with a context to stop
waiting; the host work itself is never cancelled.

Restricted Hosts

Build a host.Environment by hand, or disable capabilities through config, to run the
toolkit against a host that lacks the canonical blob constructor, the binary-string
read or the native surface encode. The toolkit falls back where a fallback exists and
fails with bloberrors.UnsupportedEnvironmentError where none does.
*/
package blobutil
