// onenote_api_request.go
package onenote

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"

	"github.com/deploymenttheory/go-onenote-page-client/logger"
	"go.uber.org/zap"
)

// logSegmentSize bounds how much of a multipart body is written to debug logs from each end.
const logSegmentSize = 1024

// MarshalPageRequest validates req and encodes it into a request body and its Content-Type.
// A request without parts becomes a text/html body; otherwise a multipart/form-data body is
// written with the presentation part first, followed by each part in request order.
// Part bodies are read to completion.
func MarshalPageRequest(req *PageRequest, log logger.Logger) ([]byte, string, error) {
	if err := req.Validate(); err != nil {
		log.Warn("Rejected create page request",
			zap.String("title", req.Title),
			zap.Strings("parts", req.PartNames()),
			zap.Error(err),
		)
		return nil, "", err
	}

	if !req.IsMultipart() {
		log.Debug("HTML Request Body", zap.String("Body", req.Presentation))
		return []byte(req.Presentation), ContentTypeHTML, nil
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writePart(writer, PresentationPartName, ContentTypeHTML, bytes.NewBufferString(req.Presentation)); err != nil {
		log.Error("Failed to write presentation part", zap.Error(err))
		return nil, "", err
	}

	for _, part := range req.Parts {
		if err := writePart(writer, part.Name, part.ContentType, part.Body); err != nil {
			log.Error("Failed to write multipart part", zap.String("part", part.Name), zap.Error(err))
			return nil, "", err
		}
		log.Debug("Added part to multipart body", zap.String("part", part.Name), zap.String("content_type", part.ContentType))
	}

	if err := writer.Close(); err != nil {
		log.Error("Failed to close multipart writer", zap.Error(err))
		return nil, "", err
	}

	bodyBytes := body.Bytes()
	log.Debug("Multipart Request Body",
		zap.Int("size", len(bodyBytes)),
		zap.String("Body", truncateForLog(bodyBytes)),
	)

	return bodyBytes, writer.FormDataContentType(), nil
}

// writePart writes one form-data part named name with the given content type.
func writePart(writer *multipart.Writer, name, contentType string, body io.Reader) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{"name": name}))
	header.Set("Content-Type", contentType)

	partWriter, err := writer.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(partWriter, body); err != nil {
		return fmt.Errorf("copying part %q: %w", name, err)
	}
	return nil
}

// truncateForLog keeps the first and last logSegmentSize bytes of large bodies.
func truncateForLog(bodyBytes []byte) string {
	bodyLen := len(bodyBytes)
	if bodyLen <= 2*logSegmentSize {
		return string(bodyBytes)
	}
	return string(bodyBytes[:logSegmentSize]) + "..." + string(bodyBytes[bodyLen-logSegmentSize:])
}
