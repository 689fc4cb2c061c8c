package http

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/sagarc03/s3gate"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// ListBucketResult is the XML listing document, one Contents entry per
// object in backend-returned order.
type ListBucketResult struct {
	XMLName  xml.Name        `xml:"ListBucketResult"`
	Name     string          `xml:"Name"`
	Prefix   string          `xml:"Prefix"`
	Contents []ObjectContent `xml:"Contents"`
}

// ObjectContent is one listing entry.
type ObjectContent struct {
	Key          string `xml:"Key"`
	Size         int64  `xml:"Size"`
	LastModified string `xml:"LastModified"`
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:  message,
		Status: code,
	}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// HandleError maps the error taxonomy to HTTP statuses. Backend and internal
// faults are logged with detail but surfaced generically.
func HandleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, s3gate.ErrObjectNotFound), errors.Is(err, s3gate.ErrBucketNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, s3gate.ErrUnauthorized):
		WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, s3gate.ErrInvalidRequest):
		WriteError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("request failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

// WriteListXML writes the bucket listing document.
func WriteListXML(w http.ResponseWriter, bucket, prefix string, infos []s3gate.ObjectInfo) {
	result := ListBucketResult{
		Name:     bucket,
		Prefix:   prefix,
		Contents: make([]ObjectContent, 0, len(infos)),
	}
	for _, info := range infos {
		result.Contents = append(result.Contents, ObjectContent{
			Key:          info.Key,
			Size:         info.Size,
			LastModified: info.LastModified.UTC().Format(time.RFC3339),
		})
	}

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte(xml.Header)); err != nil {
		slog.Error("failed to write listing", "error", err)
		return
	}
	if err := xml.NewEncoder(w).Encode(result); err != nil {
		slog.Error("failed to encode listing", "error", err)
	}
}
