package handlers

import (
	"bytes"
	"fmt"
	"io"

	"geugeu/internal/services"

	"github.com/gofiber/fiber/v2"
)

// formUploads collects the multipart files under field, buffering each one
// so its handle can be closed before the request moves on. A request
// without a multipart body simply has no files.
func formUploads(c *fiber.Ctx, field string) ([]services.Upload, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}
	var uploads []services.Upload
	for _, fileHeader := range form.File[field] {
		file, err := fileHeader.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file %s: %w", fileHeader.Filename, err)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read uploaded file %s: %w", fileHeader.Filename, err)
		}
		uploads = append(uploads, services.Upload{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Body:        bytes.NewReader(data),
		})
	}
	return uploads, nil
}

// pagination reads page/page_size query params, clamping them to sane
// bounds. minPageSize of 0 allows count-only requests.
func pagination(c *fiber.Ctx, minPageSize int) (page, pageSize int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize = c.QueryInt("page_size", 20)
	if pageSize < minPageSize {
		pageSize = minPageSize
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
