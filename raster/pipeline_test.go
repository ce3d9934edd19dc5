package raster

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"bytes"
	"context"
	"encoding/base64"
	"github.com/illuscio-dev/blobtools-go/blob"
	"github.com/illuscio-dev/blobtools-go/bloberrors"
	"github.com/illuscio-dev/blobtools-go/dataurl"
	"github.com/illuscio-dev/blobtools-go/mimetype"
	"github.com/illuscio-dev/blobtools-go/objecturl"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// A 2x2 opaque image with a distinct color per pixel.
func testImage() *image.RGBA {
	pixels := image.NewRGBA(image.Rect(0, 0, 2, 2))
	pixels.Set(0, 0, red)
	pixels.Set(1, 0, green)
	pixels.Set(0, 1, blue)
	pixels.Set(1, 1, white)
	return pixels
}

func testPNG(test *testing.T) []byte {
	buffer := bytes.Buffer{}
	require.NoError(test, png.Encode(&buffer, testImage()))
	return buffer.Bytes()
}

func testDataURL(test *testing.T) string {
	return dataurl.Format("image/png", base64.StdEncoding.EncodeToString(testPNG(test)))
}

func newFactory() *blob.Factory {
	return blob.NewFactory(&blob.NativeConstructor{}, &blob.BufferBuilderProvider{})
}

func newPipeline(surfaces SurfaceFactory) *Pipeline {
	return NewPipeline(&GoLoader{}, surfaces, newFactory())
}

func decodeBlob(test *testing.T, encoded *blob.Blob) image.Image {
	pixels, _, err := image.Decode(encoded.Reader())
	require.NoError(test, err)
	return pixels
}

func assertTestPixels(test *testing.T, pixels image.Image) {
	assert := assert.New(test)

	assert.Equal(2, pixels.Bounds().Dx())
	assert.Equal(2, pixels.Bounds().Dy())
	assert.Equal(red, color.RGBAModel.Convert(pixels.At(0, 0)))
	assert.Equal(green, color.RGBAModel.Convert(pixels.At(1, 0)))
	assert.Equal(blue, color.RGBAModel.Convert(pixels.At(0, 1)))
	assert.Equal(white, color.RGBAModel.Convert(pixels.At(1, 1)))
}

// Loader that always fails with a fixed error.
type failingLoader struct {
	err error
}

func (loader *failingLoader) Load(
	reference string, crossOrigin string, onLoad func(*ImageHandle), onError func(error),
) {
	onError(loader.err)
}

// Surface whose ToBlob delivers nil, like a host encode failure.
type nilBlobSurface struct {
	*Canvas
}

func (surface nilBlobSurface) ToBlob(
	callback func(*blob.Blob), contentType string, quality float64,
) {
	callback(nil)
}

func TestImageRefToDataURL(test *testing.T) {
	assert := assert.New(test)

	pipeline := newPipeline(&CanvasFactory{})
	url, err := pipeline.ReferenceToDataURL(
		testDataURL(test), Options{Type: "image/png"},
	).Await(context.Background())

	require.NoError(test, err)
	assert.Regexp(regexp.MustCompile(`^data:image/png;base64,`), url)

	_, data, err := dataurl.Parse(url)
	require.NoError(test, err)
	pixels, err := png.Decode(bytes.NewReader(data))
	require.NoError(test, err)
	assertTestPixels(test, pixels)
}

func TestImageRefToDataURLDefaultsToPNG(test *testing.T) {
	url, err := newPipeline(&CanvasFactory{}).ReferenceToDataURL(
		testDataURL(test), Options{},
	).Await(context.Background())

	require.NoError(test, err)
	assert.Regexp(test, `^data:image/png;base64,`, url)
}

func TestUnsupportedTypeFallsBackToPNG(test *testing.T) {
	url, err := newPipeline(&CanvasFactory{}).ReferenceToDataURL(
		testDataURL(test), Options{Type: "image/x-unknown"},
	).Await(context.Background())

	require.NoError(test, err)
	assert.Regexp(test, `^data:image/png;base64,`, url)
}

func TestImageRefToBlobNative(test *testing.T) {
	assert := assert.New(test)

	encoded, err := newPipeline(&CanvasFactory{}).ReferenceToBlob(
		testDataURL(test), Options{},
	).Await(context.Background())

	require.NoError(test, err)
	assert.Equal("image/png", encoded.Type())
	assertTestPixels(test, decodeBlob(test, encoded))
}

func TestImageRefToBlobDataURLFallback(test *testing.T) {
	assert := assert.New(test)

	pipeline := newPipeline(&CanvasFactory{DisableToBlob: true})
	encoded, err := pipeline.ReferenceToBlob(
		testDataURL(test), Options{Type: "image/png"},
	).Await(context.Background())

	require.NoError(test, err)
	assert.Equal("image/png", encoded.Type())
	assertTestPixels(test, decodeBlob(test, encoded))
}

func TestFallbackMatchesNative(test *testing.T) {
	native, err := newPipeline(&CanvasFactory{}).ReferenceToBlob(
		testDataURL(test), Options{},
	).Await(context.Background())
	require.NoError(test, err)

	fallback, err := newPipeline(&CanvasFactory{DisableToBlob: true}).ReferenceToBlob(
		testDataURL(test), Options{},
	).Await(context.Background())
	require.NoError(test, err)

	assert.True(test, native.Equal(fallback))
}

func TestJPEGQuality(test *testing.T) {
	assert := assert.New(test)

	large := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for x := 0; x < 64; x++ {
		for y := 0; y < 64; y++ {
			large.Set(x, y, color.RGBA{R: uint8(x * 4), G: uint8(y * 4), B: 90, A: 255})
		}
	}
	canvas := NewCanvas(64, 64)
	canvas.DrawImage(NewImageHandle("", "", "png", large), 0, 0)

	pipeline := newPipeline(&CanvasFactory{})
	low, err := pipeline.SurfaceToBlob(canvas, "image/jpeg", 0.1).Await(context.Background())
	require.NoError(test, err)
	high, err := pipeline.SurfaceToBlob(canvas, "image/jpeg", 1).Await(context.Background())
	require.NoError(test, err)

	assert.Equal("image/jpeg", low.Type())
	assert.Less(low.Size(), high.Size())
}

func TestLosslessIgnoresQuality(test *testing.T) {
	assert := assert.New(test)

	canvas := NewCanvas(1, 1)
	assert.Equal(0.0, canvas.effectiveQuality(mimetype.PNG, 0.5))
	assert.Equal(0.0, canvas.effectiveQuality(mimetype.GIF, 0.5))
	assert.Equal(0.5, canvas.effectiveQuality(mimetype.JPEG, 0.5))
	assert.Equal(DefaultJPEGQuality, canvas.effectiveQuality(mimetype.JPEG, 0))
	assert.Equal(DefaultJPEGQuality, canvas.effectiveQuality(mimetype.JPEG, 1.5))

	low, err := canvas.ToDataURL("image/png", 0.1)
	require.NoError(test, err)
	high, err := canvas.ToDataURL("image/png", 1)
	require.NoError(test, err)
	assert.Equal(low, high)
}

func TestNilNativeBlobRejects(test *testing.T) {
	surface := nilBlobSurface{Canvas: NewCanvas(1, 1)}
	_, err := newPipeline(&CanvasFactory{}).SurfaceToBlob(
		surface, "", 0,
	).Await(context.Background())

	assert.True(test, xerrors.Is(err, bloberrors.HostIOFailure))
}

func TestLoadFailurePropagatesVerbatim(test *testing.T) {
	assert := assert.New(test)

	loadErr := xerrors.New("image failed to load")
	pipeline := NewPipeline(&failingLoader{err: loadErr}, &CanvasFactory{}, newFactory())

	_, err := pipeline.ReferenceToBlob("anything", Options{}).Await(context.Background())
	assert.Equal(loadErr, err)

	_, err = pipeline.ReferenceToDataURL("anything", Options{}).Await(context.Background())
	assert.Equal(loadErr, err)
}

func TestRasterizeNaturalSize(test *testing.T) {
	assert := assert.New(test)

	handle, err := newPipeline(&CanvasFactory{}).Load(
		testDataURL(test), "",
	).Await(context.Background())
	require.NoError(test, err)

	surface := newPipeline(&CanvasFactory{}).Rasterize(handle)
	assert.Equal(2, surface.Width())
	assert.Equal(2, surface.Height())

	canvas, ok := surface.(*Canvas)
	require.True(test, ok)
	assertTestPixels(test, canvas.Pixels())
}

func TestLoadObjectURL(test *testing.T) {
	assert := assert.New(test)

	registry := objecturl.NewRegistry(objecturl.NewMemoryProvider(""))
	handle, err := registry.Register(blob.New(testPNG(test), "image/png"))
	require.NoError(test, err)

	loader := &GoLoader{Objects: registry}
	pipeline := NewPipeline(loader, &CanvasFactory{}, newFactory())

	encoded, err := pipeline.ReferenceToBlob(handle, Options{}).Await(context.Background())
	require.NoError(test, err)
	assertTestPixels(test, decodeBlob(test, encoded))

	assert.NoError(registry.Revoke(handle))
	_, err = pipeline.ReferenceToBlob(handle, Options{}).Await(context.Background())
	assert.True(xerrors.Is(err, bloberrors.HostIOFailure))
}

func TestLoadRemote(test *testing.T) {
	assert := assert.New(test)

	var authorization string
	server := httptest.NewServer(http.HandlerFunc(
		func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path == "/missing.png" {
				writer.WriteHeader(http.StatusNotFound)
				return
			}
			authorization = request.Header.Get("Authorization")
			writer.Header().Set("Content-Type", "image/png")
			_, _ = writer.Write(testPNG(test))
		},
	))
	defer server.Close()

	loader := &GoLoader{Client: server.Client(), Authorization: "Bearer token"}
	pipeline := NewPipeline(loader, &CanvasFactory{}, newFactory())

	handle, err := pipeline.Load(
		server.URL+"/image.png", "anonymous",
	).Await(context.Background())
	require.NoError(test, err)
	assert.Equal(mimetype.PNG, handle.Format())
	assert.Equal("anonymous", handle.CrossOrigin())
	assert.Equal("", authorization)

	_, err = pipeline.Load(
		server.URL+"/image.png", "use-credentials",
	).Await(context.Background())
	require.NoError(test, err)
	assert.Equal("Bearer token", authorization)

	_, err = pipeline.Load(server.URL+"/missing.png", "").Await(context.Background())
	assert.True(xerrors.Is(err, bloberrors.HostIOFailure))
}

func TestLoadRemoteWarnsOnNonImageType(test *testing.T) {
	assert := assert.New(test)

	server := httptest.NewServer(http.HandlerFunc(
		func(writer http.ResponseWriter, request *http.Request) {
			writer.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = writer.Write(testPNG(test))
		},
	))
	defer server.Close()

	output := &bytes.Buffer{}
	previous := log.Logger
	log.Logger = zerolog.New(output)
	defer func() {
		log.Logger = previous
	}()

	loader := &GoLoader{Client: server.Client()}
	handle, err := NewPipeline(loader, &CanvasFactory{}, newFactory()).Load(
		server.URL+"/page", "",
	).Await(context.Background())
	require.NoError(test, err)

	assert.Equal(mimetype.PNG, handle.Format())
	assert.Contains(output.String(), "image response is not served as an image")
	assert.Contains(output.String(), `"contentType":"text/html"`)
}

func TestLoadUntypedDataURL(test *testing.T) {
	assert := assert.New(test)

	reference := dataurl.Format("", base64.StdEncoding.EncodeToString(testPNG(test)))
	assert.True(strings.HasPrefix(reference, "data:;base64,"))

	pipeline := newPipeline(&CanvasFactory{})
	handle, err := pipeline.Load(reference, "").Await(context.Background())
	require.NoError(test, err)
	assert.Equal(mimetype.PNG, handle.Format())
	assertTestPixels(test, handle.Image())

	converted, err := pipeline.ReferenceToDataURL(
		reference, Options{},
	).Await(context.Background())
	require.NoError(test, err)
	assert.True(strings.HasPrefix(converted, "data:image/png;base64,"))
}

func TestLoadFile(test *testing.T) {
	assert := assert.New(test)

	path := filepath.Join(test.TempDir(), "image.png")
	require.NoError(test, os.WriteFile(path, testPNG(test), 0o600))

	denied := NewPipeline(&GoLoader{}, &CanvasFactory{}, newFactory())
	_, err := denied.Load(path, "").Await(context.Background())
	assert.True(xerrors.Is(err, bloberrors.HostIOFailure))

	allowed := NewPipeline(&GoLoader{AllowFiles: true}, &CanvasFactory{}, newFactory())
	for _, reference := range []string{path, "file://" + path} {
		handle, err := allowed.Load(reference, "").Await(context.Background())
		require.NoError(test, err)
		assert.Equal(2, handle.Width())
	}
}

func TestLoadUndecodable(test *testing.T) {
	_, err := newPipeline(&CanvasFactory{}).Load(
		"data:image/png;base64,aGVsbG8=", "",
	).Await(context.Background())

	assert.True(test, xerrors.Is(err, bloberrors.HostIOFailure))
}

func TestNormalizeCrossOrigin(test *testing.T) {
	assert := assert.New(test)

	assert.Equal(CrossOriginNone, NormalizeCrossOrigin(""))
	assert.Equal(CrossOriginAnonymous, NormalizeCrossOrigin("anonymous"))
	assert.Equal(CrossOriginAnonymous, NormalizeCrossOrigin("bogus"))
	assert.Equal(CrossOriginUseCredentials, NormalizeCrossOrigin("Use-Credentials"))
}
