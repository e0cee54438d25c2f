package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"reflect"
	"strings"
)

// Body is the tagged union of request body kinds. The caller picks the
// encoding explicitly; the client never inspects values at runtime to
// decide between JSON and multipart.
type Body interface {
	encode() (*encoded, error)
}

// encoded is a ready-to-send request body.
type encoded struct {
	reader      io.Reader
	contentType string
	length      int64 // -1 when not known in advance
}

type jsonBody struct {
	value any
}

// JSONBody wraps a JSON-serializable value as a request body with an
// application/json content type.
func JSONBody(v any) Body {
	return jsonBody{value: v}
}

func (b jsonBody) encode() (*encoded, error) {
	data, err := json.Marshal(b.value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON body: %w", err)
	}
	return &encoded{
		reader:      bytes.NewReader(data),
		contentType: "application/json",
		length:      int64(len(data)),
	}, nil
}

type partKind int

const (
	textPart partKind = iota
	jsonPart
	filePart
	fileReaderPart
)

type formPart struct {
	kind        partKind
	name        string
	filename    string
	contentType string
	text        string
	value       any
	content     []byte
	reader      io.Reader
}

// Form is a multipart request body built from named parts. Parts are
// written in append order; field order never affects correctness on the
// backend. Nil-valued fields are omitted entirely rather than sent empty.
type Form struct {
	parts []formPart
}

// NewForm creates an empty multipart form body.
func NewForm() *Form {
	return &Form{}
}

// Text appends a plain text field.
func (f *Form) Text(name, value string) *Form {
	f.parts = append(f.parts, formPart{kind: textPart, name: name, text: value})
	return f
}

// JSON appends an object- or array-valued field serialized to JSON text.
// A nil value is omitted entirely.
func (f *Form) JSON(name string, v any) *Form {
	if isNil(v) {
		return f
	}
	f.parts = append(f.parts, formPart{kind: jsonPart, name: name, value: v})
	return f
}

// File appends a binary part with its original filename and content type
// preserved. Nil content is omitted entirely.
func (f *Form) File(name, filename, contentType string, content []byte) *Form {
	if content == nil {
		return f
	}
	f.parts = append(f.parts, formPart{
		kind:        filePart,
		name:        name,
		filename:    filename,
		contentType: contentType,
		content:     content,
	})
	return f
}

// FileReader appends a binary part streamed from r. The total body size
// becomes unknown, which disables upload progress reporting for requests
// carrying this form.
func (f *Form) FileReader(name, filename, contentType string, r io.Reader) *Form {
	if r == nil {
		return f
	}
	f.parts = append(f.parts, formPart{
		kind:        fileReaderPart,
		name:        name,
		filename:    filename,
		contentType: contentType,
		reader:      r,
	})
	return f
}

// sizeKnown reports whether the encoded form length can be computed ahead
// of transmission.
func (f *Form) sizeKnown() bool {
	for _, p := range f.parts {
		if p.kind == fileReaderPart {
			return false
		}
	}
	return true
}

func (f *Form) encode() (*encoded, error) {
	if f.sizeKnown() {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		if err := f.writeParts(w); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
		}
		return &encoded{
			reader:      &buf,
			contentType: w.FormDataContentType(),
			length:      int64(buf.Len()),
		}, nil
	}

	// A reader-backed part means the total size cannot be computed, so the
	// body is streamed through a pipe instead of buffered.
	pr, pw := io.Pipe()
	w := multipart.NewWriter(pw)
	go func() {
		if err := f.writeParts(w); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(w.Close())
	}()

	return &encoded{
		reader:      pr,
		contentType: w.FormDataContentType(),
		length:      -1,
	}, nil
}

func (f *Form) writeParts(w *multipart.Writer) error {
	for _, p := range f.parts {
		switch p.kind {
		case textPart:
			if err := w.WriteField(p.name, p.text); err != nil {
				return fmt.Errorf("failed to write field %s: %w", p.name, err)
			}
		case jsonPart:
			data, err := json.Marshal(p.value)
			if err != nil {
				return fmt.Errorf("failed to encode field %s: %w", p.name, err)
			}
			if err := w.WriteField(p.name, string(data)); err != nil {
				return fmt.Errorf("failed to write field %s: %w", p.name, err)
			}
		case filePart:
			part, err := w.CreatePart(fileHeader(p.name, p.filename, p.contentType))
			if err != nil {
				return fmt.Errorf("failed to create part %s: %w", p.name, err)
			}
			if _, err := part.Write(p.content); err != nil {
				return fmt.Errorf("failed to write part %s: %w", p.name, err)
			}
		case fileReaderPart:
			part, err := w.CreatePart(fileHeader(p.name, p.filename, p.contentType))
			if err != nil {
				return fmt.Errorf("failed to create part %s: %w", p.name, err)
			}
			if _, err := io.Copy(part, p.reader); err != nil {
				return fmt.Errorf("failed to copy part %s: %w", p.name, err)
			}
		}
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func fileHeader(name, filename, contentType string) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(name), quoteEscaper.Replace(filename)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)
	return h
}

// isNil reports whether v is nil, including typed nil pointers, maps and
// slices hiding behind an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
