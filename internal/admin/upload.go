package admin

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
)

// maxMultipartMemory is how much of a submission is kept in memory before
// spilling file parts to disk.
const maxMultipartMemory = 16 << 20

// MaxSubmissionBytes bounds a whole admin submission: the largest upload plus
// room for the text fields.
const MaxSubmissionBytes = federation.MaxDocumentBytes + 2<<20

var ErrTooLarge = errors.New("upload too large")

// UploadError is a blocking notice about one file input. The field it names is
// left unset.
type UploadError struct {
	Field   string
	Message string
	Err     error
}

func (e *UploadError) Error() string { return e.Field + ": " + e.Message }

func (e *UploadError) Unwrap() error { return e.Err }

func tooLarge(field string, limit int64) *UploadError {
	return &UploadError{
		Field:   field,
		Message: fmt.Sprintf("Ukuran file terlalu besar! Maksimal %dMB.", limit/(1<<20)),
		Err:     ErrTooLarge,
	}
}

// Upload is a file embedded as a data payload.
type Upload struct {
	Filename string
	MIME     string
	Size     int64
	DataURI  string
}

// parseSubmission reads a multipart or urlencoded body. A body over the
// request limit is reported as an oversize upload.
func parseSubmission(r *http.Request) error {
	err := r.ParseMultipartForm(maxMultipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return tooLarge("file", federation.MaxDocumentBytes)
	}
	return err
}

// readUpload returns nil when the field carries no file.
func readUpload(r *http.Request, field string, limit int64) (*Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	defer file.Close()

	if header.Size > limit {
		return nil, tooLarge(field, limit)
	}
	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	if int64(len(data)) > limit {
		return nil, tooLarge(field, limit)
	}
	if len(data) == 0 {
		return nil, nil
	}

	mime, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	return &Upload{
		Filename: header.Filename,
		MIME:     mime,
		Size:     int64(len(data)),
		DataURI:  "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}

// readMedia accepts images and videos up to MaxMediaBytes.
func readMedia(r *http.Request, field string, allowVideo bool) (*Upload, error) {
	up, err := readUpload(r, field, federation.MaxMediaBytes)
	if err != nil || up == nil {
		return up, err
	}
	switch {
	case strings.HasPrefix(up.MIME, "image/"):
	case allowVideo && strings.HasPrefix(up.MIME, "video/"):
	default:
		return nil, &UploadError{Field: field, Message: "Format file tidak didukung (" + up.MIME + ")."}
	}
	return up, nil
}

var ErrNotDataURI = errors.New("not a base64 data URI")

// DecodeDataURI returns the MIME type and payload of an embedded upload.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	meta, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	mime, _, _ := strings.Cut(meta, ";")
	if mime == "" {
		mime = "text/plain"
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URI: %w", err)
	}
	return mime, data, nil
}
