package httpx

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/valyala/fasthttp"
)

// DecodeBody decodes a response body according to its Content-Encoding
// header. Chained encodings ("gzip, br") are unwound right to left.
// Supported: gzip, deflate (zlib-wrapped or raw), br, zstd.
func DecodeBody(resp *fasthttp.Response, body []byte) ([]byte, error) {
	ce := string(resp.Header.Peek("Content-Encoding"))
	if ce == "" {
		return body, nil
	}

	encodings := strings.Split(ce, ",")
	for i := len(encodings) - 1; i >= 0; i-- {
		var err error
		switch strings.TrimSpace(strings.ToLower(encodings[i])) {
		case "gzip":
			body, err = decodeGzip(body)
		case "br":
			body, err = io.ReadAll(brotli.NewReader(bytes.NewReader(body)))
		case "zstd":
			body, err = decodeZstd(body)
		case "deflate":
			body, err = decodeDeflate(body)
		case "identity", "":
			// No transformation.
		default:
			return nil, fmt.Errorf("unsupported content-encoding: %q", encodings[i])
		}
		if err != nil {
			return nil, err
		}
	}
	return body, nil
}

func decodeGzip(body []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	out, err := io.ReadAll(gr)
	if cerr := gr.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func decodeZstd(body []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}

func decodeDeflate(body []byte) ([]byte, error) {
	// zlib-wrapped per RFC, raw DEFLATE as served by sloppy origins.
	if zr, err := zlib.NewReader(bytes.NewReader(body)); err == nil {
		out, err := io.ReadAll(zr)
		if cerr := zr.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	fr := flate.NewReader(bytes.NewReader(body))
	out, err := io.ReadAll(fr)
	if cerr := fr.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}
