package raster

import (
	"bytes"
	"github.com/illuscio-dev/blobtools-go/bloberrors"
	"github.com/illuscio-dev/blobtools-go/dataurl"
	"github.com/illuscio-dev/blobtools-go/mimetype"
	"github.com/illuscio-dev/blobtools-go/objecturl"
	"github.com/rs/zerolog/log"
	"image"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	// Decoders available to GoLoader.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// GoLoader is the Go host's image loader. It resolves data-URLs, object-URLs, http(s)
// URLs and, when AllowFiles is set, file URLs and paths. Decoding uses image.Decode.
type GoLoader struct {
	// HTTP client for remote references. http.DefaultClient when nil.
	Client *http.Client
	// Registry for "blob:" references. Such references fail when nil.
	Objects *objecturl.Registry
	// Sent as User-Agent on remote requests when set.
	UserAgent string
	// Sent as Authorization on remote requests made with use-credentials.
	Authorization string
	// Whether local files may be read.
	AllowFiles bool
}

func (loader *GoLoader) Load(
	reference string,
	crossOrigin string,
	onLoad func(*ImageHandle),
	onError func(error),
) {
	crossOrigin = NormalizeCrossOrigin(crossOrigin)

	go func() {
		logger := log.With().Str("reference", abbreviate(reference)).Logger()
		logger.Debug().Str("crossOrigin", crossOrigin).Msg("loading image")

		handle, err := loader.load(reference, crossOrigin)
		if err != nil {
			logger.Debug().Err(err).Msg("image load failed")
			onError(err)
			return
		}
		onLoad(handle)
	}()
}

func (loader *GoLoader) load(reference string, crossOrigin string) (*ImageHandle, error) {
	data, err := loader.fetch(reference, crossOrigin)
	if err != nil {
		return nil, err
	}

	pixels, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, bloberrors.HostIOFailure.New("image could not be decoded", err)
	}
	return NewImageHandle(reference, crossOrigin, format, pixels), nil
}

// Returns the raw bytes named by reference.
func (loader *GoLoader) fetch(reference string, crossOrigin string) ([]byte, error) {
	if dataurl.IsDataURL(reference) {
		_, data, err := dataurl.Parse(reference)
		if err != nil {
			return nil, bloberrors.HostIOFailure.New("invalid image data-URL", err)
		}
		return data, nil
	}

	if strings.HasPrefix(reference, objecturl.Scheme) {
		if loader.Objects == nil {
			return nil, bloberrors.HostIOFailure.New("object-URLs are not supported", nil)
		}
		object, ok := loader.Objects.Resolve(reference)
		if !ok {
			return nil, bloberrors.HostIOFailure.New(
				"object-URL is not registered: "+reference, nil,
			)
		}
		return object.Bytes(), nil
	}

	parsed, err := url.Parse(reference)
	if err == nil {
		switch strings.ToLower(parsed.Scheme) {
		case "http", "https":
			return loader.fetchRemote(reference, crossOrigin)
		case "file":
			return loader.readFile(parsed.Path)
		}
	}
	return loader.readFile(reference)
}

func (loader *GoLoader) fetchRemote(reference string, crossOrigin string) ([]byte, error) {
	request, err := http.NewRequest(http.MethodGet, reference, nil)
	if err != nil {
		return nil, bloberrors.HostIOFailure.New("invalid image URL", err)
	}
	if loader.UserAgent != "" {
		request.Header.Set("User-Agent", loader.UserAgent)
	}
	if crossOrigin == CrossOriginUseCredentials && loader.Authorization != "" {
		request.Header.Set("Authorization", loader.Authorization)
	}

	client := loader.Client
	if client == nil {
		client = http.DefaultClient
	}

	response, err := client.Do(request)
	if err != nil {
		return nil, bloberrors.HostIOFailure.New("image request failed", err)
	}
	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, bloberrors.HostIOFailure.Newf(
			nil, "image request returned status %d", response.StatusCode,
		)
	}

	served := mimetype.FromHeader(response.Header)
	if served != mimetype.UNKNOWN && served != mimetype.OCTET && !served.IsImage() {
		log.Warn().
			Str("reference", abbreviate(reference)).
			Str("contentType", string(served)).
			Msg("image response is not served as an image")
	}

	data, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return nil, bloberrors.HostIOFailure.New("image response read failed", err)
	}
	return data, nil
}

func (loader *GoLoader) readFile(path string) ([]byte, error) {
	if !loader.AllowFiles {
		return nil, bloberrors.HostIOFailure.New("file references are disabled", nil)
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, bloberrors.HostIOFailure.New("image file read failed", err)
	}
	return data, nil
}

// Shortens data-URLs for log output.
func abbreviate(reference string) string {
	if len(reference) > 64 {
		return reference[:64] + "..."
	}
	return reference
}
