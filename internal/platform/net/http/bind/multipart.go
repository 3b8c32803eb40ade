package bind

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	perr "nutriscope/internal/platform/errors"
)

// File is an uploaded multipart file held in memory
type File struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// MultipartOptions controls multipart parsing
type MultipartOptions struct {
	MaxBytes  int64 // whole request body; default 16MB
	MaxMemory int64 // passed to ParseMultipartForm; default 8MB
}

func defaultMultipartOptions() MultipartOptions {
	return MultipartOptions{MaxBytes: 16 << 20, MaxMemory: 8 << 20}
}

var fileType = reflect.TypeOf(File{})

// ParseMultipart decodes a multipart/form-data request into T using `form` tags and validates it.
// Supported field kinds: string, bool, ints, floats, File and *File
func ParseMultipart[T any](w http.ResponseWriter, r *http.Request, opts ...MultipartOptions) (T, error) {
	var zero T
	o := defaultMultipartOptions()
	if len(opts) > 0 {
		if opts[0].MaxBytes > 0 {
			o.MaxBytes = opts[0].MaxBytes
		}
		if opts[0].MaxMemory > 0 {
			o.MaxMemory = opts[0].MaxMemory
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, o.MaxBytes)
	if err := r.ParseMultipartForm(o.MaxMemory); err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.As(err, &tooBig):
			return zero, perr.Newf(perr.ErrorCodeTooLarge, "request body exceeds %d bytes", o.MaxBytes)
		case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
			return zero, perr.Validationf("", "multipart/form-data body required")
		default:
			return zero, perr.Wrap(err, perr.ErrorCodeValidation, "invalid multipart form")
		}
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	var dst T
	rv := reflect.ValueOf(&dst).Elem()
	if rv.Kind() != reflect.Struct {
		return zero, perr.Internalf("bind: multipart target must be a struct")
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		name := strings.Split(sf.Tag.Get("form"), ",")[0]
		if name == "" || name == "-" || !sf.IsExported() {
			continue
		}
		if err := setField(rv.Field(i), name, r.MultipartForm); err != nil {
			return zero, err
		}
	}

	if err := Validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

func setField(fv reflect.Value, name string, form *multipart.Form) error {
	switch {
	case fv.Type() == fileType:
		f, ok, err := readFile(name, form)
		if err != nil || !ok {
			return err
		}
		fv.Set(reflect.ValueOf(f))
		return nil
	case fv.Kind() == reflect.Pointer && fv.Type().Elem() == fileType:
		f, ok, err := readFile(name, form)
		if err != nil || !ok {
			return err
		}
		fv.Set(reflect.ValueOf(&f))
		return nil
	}

	vals := form.Value[name]
	if len(vals) == 0 {
		return nil
	}
	s := strings.TrimSpace(vals[0])
	bad := func() error { return perr.Validationf(name, "%s has an invalid value", name) }

	switch fv.Kind() {
	case reflect.String:
		fv.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return bad()
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, fv.Type().Bits())
		if err != nil {
			return bad()
		}
		fv.SetInt(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, fv.Type().Bits())
		if err != nil {
			return bad()
		}
		fv.SetFloat(f)
	default:
		return perr.Internalf("bind: unsupported form field kind %s", fv.Kind())
	}
	return nil
}

// readFile returns ok=false when the part is absent or was sent without a filename
func readFile(name string, form *multipart.Form) (File, bool, error) {
	hs := form.File[name]
	if len(hs) == 0 || hs[0].Filename == "" {
		return File{}, false, nil
	}
	h := hs[0]
	f, err := h.Open()
	if err != nil {
		return File{}, false, perr.Wrapf(err, perr.ErrorCodeValidation, "cannot open %s", name)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return File{}, false, perr.Wrapf(err, perr.ErrorCodeValidation, "cannot read %s", name)
	}
	return File{
		Field:       name,
		Filename:    h.Filename,
		ContentType: h.Header.Get("Content-Type"),
		Data:        data,
	}, true, nil
}
