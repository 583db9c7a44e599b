package multihost

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
)

// File is one part of a multipart upload.
type File struct {
	Field       string
	Name        string
	ContentType string
	Content     io.Reader
}

// RequestOption customizes a single dispatched request.
type RequestOption func(*requestConfig)

type requestConfig struct {
	params      url.Values
	headers     http.Header
	cookies     []*http.Cookie
	content     io.Reader
	contentType string
	data        url.Values
	jsonBody    interface{}
	hasJSON     bool
	files       []File
}

// WithParams merges values into the query string.
func WithParams(values url.Values) RequestOption {
	return func(rc *requestConfig) {
		for k, vs := range values {
			for _, v := range vs {
				rc.params.Add(k, v)
			}
		}
	}
}

// WithParam adds a single query parameter.
func WithParam(key, value string) RequestOption {
	return func(rc *requestConfig) {
		rc.params.Add(key, value)
	}
}

// WithHeaders merges h into the request headers.
func WithHeaders(h http.Header) RequestOption {
	return func(rc *requestConfig) {
		for k, vs := range h {
			for _, v := range vs {
				rc.headers.Add(k, v)
			}
		}
	}
}

// WithHeader sets a single request header.
func WithHeader(key, value string) RequestOption {
	return func(rc *requestConfig) {
		rc.headers.Set(key, value)
	}
}

// WithCookies attaches cookies to the request.
func WithCookies(cookies ...*http.Cookie) RequestOption {
	return func(rc *requestConfig) {
		rc.cookies = append(rc.cookies, cookies...)
	}
}

// WithContent sends r as the raw body. An empty contentType leaves the header unset.
func WithContent(r io.Reader, contentType string) RequestOption {
	return func(rc *requestConfig) {
		rc.content = r
		rc.contentType = contentType
	}
}

// WithData sends values form-encoded, or as plain fields when combined with WithFiles.
func WithData(values url.Values) RequestOption {
	return func(rc *requestConfig) {
		if rc.data == nil {
			rc.data = url.Values{}
		}
		for k, vs := range values {
			for _, v := range vs {
				rc.data.Add(k, v)
			}
		}
	}
}

// WithJSON sends v encoded as JSON.
func WithJSON(v interface{}) RequestOption {
	return func(rc *requestConfig) {
		rc.jsonBody = v
		rc.hasJSON = true
	}
}

// WithFiles sends a multipart/form-data body containing files.
func WithFiles(files ...File) RequestOption {
	return func(rc *requestConfig) {
		rc.files = append(rc.files, files...)
	}
}

func newRequestConfig(opts []RequestOption) *requestConfig {
	rc := &requestConfig{
		params:  url.Values{},
		headers: http.Header{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(rc)
		}
	}
	return rc
}

func (rc *requestConfig) hasBody() bool {
	return rc.content != nil || rc.data != nil || rc.hasJSON || len(rc.files) > 0
}

// validateFor enforces the parameter set of each verb: GET and DELETE carry
// no body, PUT and PATCH carry no files.
func (rc *requestConfig) validateFor(method Method) error {
	switch method {
	case MethodGet, MethodDelete:
		if rc.hasBody() {
			return fmt.Errorf("%s requests do not accept a body", method)
		}
	case MethodPut, MethodPatch:
		if len(rc.files) > 0 {
			return fmt.Errorf("%s requests do not accept files", method)
		}
	}

	kinds := 0
	if rc.content != nil {
		kinds++
	}
	if rc.hasJSON {
		kinds++
	}
	if rc.data != nil || len(rc.files) > 0 {
		kinds++
	}
	if kinds > 1 {
		return fmt.Errorf("content, JSON and form data are mutually exclusive")
	}
	return nil
}

// body returns the encoded request body and its content type.
func (rc *requestConfig) body() (io.Reader, string, error) {
	switch {
	case len(rc.files) > 0:
		return rc.multipartBody()
	case rc.hasJSON:
		b, err := json.Marshal(rc.jsonBody)
		if err != nil {
			return nil, "", fmt.Errorf("encode JSON body: %w", err)
		}
		return bytes.NewReader(b), "application/json", nil
	case rc.data != nil:
		return strings.NewReader(rc.data.Encode()), "application/x-www-form-urlencoded", nil
	case rc.content != nil:
		return rc.content, rc.contentType, nil
	}
	return nil, "", nil
}

func (rc *requestConfig) multipartBody() (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, vs := range rc.data {
		for _, v := range vs {
			if err := mw.WriteField(k, v); err != nil {
				return nil, "", err
			}
		}
	}

	for _, f := range rc.files {
		if f.Content == nil {
			return nil, "", fmt.Errorf("file %q has no content", f.Field)
		}
		var part io.Writer
		var err error
		if f.ContentType != "" {
			h := make(textproto.MIMEHeader)
			h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.Name))
			h.Set("Content-Type", f.ContentType)
			part, err = mw.CreatePart(h)
		} else {
			part, err = mw.CreateFormFile(f.Field, f.Name)
		}
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, "", fmt.Errorf("read file %q: %w", f.Field, err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
