// Package multipart builds multipart/form-data request bodies by hand: the
// vendor's digitization endpoint expects scalar form fields plus exactly one
// document part, and the whole body is assembled in memory before the call.
// There is no streaming; size limits are the caller's concern.
package multipart

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// File describes the single binary part of a form body.
type File struct {
	FieldName   string
	FileName    string
	ContentType string
	Data        []byte
}

// Build assembles a multipart/form-data body containing one part per entry
// of fields (written as strings, in sorted key order so the output is
// deterministic) followed by the file part. It returns the exact body bytes
// and the Content-Type header value carrying the boundary.
func Build(fields map[string]string, file File) ([]byte, string, error) {
	if file.FieldName == "" {
		return nil, "", fmt.Errorf("multipart file field name is empty")
	}

	boundary := "----FlowkitFormBoundary" + strings.ReplaceAll(uuid.NewString(), "-", "")

	var buf bytes.Buffer

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(&buf, "--%s\r\n", boundary)
		fmt.Fprintf(&buf, "Content-Disposition: form-data; name=%q\r\n\r\n", name)
		buf.WriteString(fields[name])
		buf.WriteString("\r\n")
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Disposition: form-data; name=%q; filename=%q\r\n",
		file.FieldName, file.FileName)
	fmt.Fprintf(&buf, "Content-Type: %s\r\n\r\n", contentType)
	buf.Write(file.Data)
	fmt.Fprintf(&buf, "\r\n--%s--\r\n", boundary)

	return buf.Bytes(), "multipart/form-data; boundary=" + boundary, nil
}
