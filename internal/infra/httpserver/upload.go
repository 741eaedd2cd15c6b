package httpserver

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/bryanwahyu/labinterpreter/internal/middleware"
)

const uploadField = "file"

var errMissingFile = errors.New(`multipart field "file" is required`)

// upload returns the CSV part of a multipart request after checking its name
// and size. The file is kept in memory or a temp file by net/http and is never
// persisted by the service.
func (r *Router) upload(w http.ResponseWriter, req *http.Request) (multipart.File, error) {
	// headroom for the multipart envelope
	req.Body = http.MaxBytesReader(w, req.Body, r.maxUpload+64<<10)
	if err := req.ParseMultipartForm(r.maxUpload); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, middleware.ErrUploadTooBig
		}
		return nil, errMissingFile
	}

	f, hdr, err := req.FormFile(uploadField)
	if err != nil {
		return nil, errMissingFile
	}
	if err := middleware.ValidateUpload(hdr.Filename, hdr.Size, r.maxUpload); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}
