/*
Package raster bridges image references to blobs and data-URLs through a rendering
surface.

The pipeline has three stages, run strictly in sequence:

1. Load resolves a reference (URL, path, data-URL or object-URL) through the host
Loader into an ImageHandle.

2. Rasterize draws the image once, at natural size, at (0,0) on a new Surface.

3. The surface is serialized. SurfaceToBlob uses the surface's own ToBlob when it
implements BlobSurface; otherwise it serializes to a data-URL and parses that into a
blob.

The host primitives signal completion through callbacks, which the pipeline wraps in
futures. Native ToBlob has no failure signal. A host that delivers a nil blob is
reported as bloberrors.HostIOFailure; the pipeline adds no timeout, so a host that never
calls back leaves the future pending.
*/
package raster
