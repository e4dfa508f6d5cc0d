package handler

import (
	"github.com/gofiber/fiber/v2"

	"vidar/internal/service"
)

// Upload godoc
// @Summary Upload an image
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PNG, JPG or WEBP image"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errorPayload
// @Failure 413 {object} errorPayload
// @Router /api/upload [post]
func Upload(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return respond(c, service.ErrFileRequired)
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		url, err := svc.Upload(c.UserContext(), service.UploadFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Size:        fh.Size,
			Content:     f,
		})
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}
}
