package handler

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"vidar/internal/normalize"
	"vidar/internal/service"
)

var errBadJSON = &normalize.ValidationError{Message: "invalid JSON body"}

// RegisterResource mounts the CRUD routes of one collection under /<name> on r.
func RegisterResource[T any](r fiber.Router, name string, svc service.ResourceService[T]) {
	g := r.Group("/" + name)
	g.Get("/", ListResource(svc))
	g.Post("/", CreateResource(svc))
	g.Put("/:id", UpdateResource(svc))
	g.Delete("/:id", DeleteResource(svc))
}

// ListResource godoc
// @Summary List records, newest first
// @Tags resources
// @Produce json
// @Param resource path string true "collection name"
// @Success 200 {array} object
// @Failure 401 {object} errorPayload
// @Router /api/{resource} [get]
func ListResource[T any](svc service.ResourceService[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(items)
	}
}

// CreateResource godoc
// @Summary Create a record
// @Tags resources
// @Accept json
// @Produce json
// @Param resource path string true "collection name"
// @Success 201 {object} object
// @Failure 400 {object} errorPayload
// @Router /api/{resource} [post]
func CreateResource[T any](svc service.ResourceService[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := decodeRaw(c.Body())
		if err != nil {
			return respond(c, err)
		}
		doc, err := svc.Create(c.UserContext(), raw)
		if err != nil {
			return respond(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// UpdateResource godoc
// @Summary Replace the fields of a record
// @Tags resources
// @Accept json
// @Produce json
// @Param resource path string true "collection name"
// @Param id path string true "record id"
// @Success 200 {object} object
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/{resource}/{id} [put]
func UpdateResource[T any](svc service.ResourceService[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := decodeRaw(c.Body())
		if err != nil {
			return respond(c, err)
		}
		doc, err := svc.Update(c.UserContext(), c.Params("id"), raw)
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(doc)
	}
}

// DeleteResource godoc
// @Summary Delete a record
// @Tags resources
// @Produce json
// @Param resource path string true "collection name"
// @Param id path string true "record id"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/{resource}/{id} [delete]
func DeleteResource[T any](svc service.ResourceService[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return respond(c, err)
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}

// decodeRaw parses a JSON object body. An empty body reads as an empty object.
// Numbers are kept as json.Number so the normalizers see their exact text.
func decodeRaw(body []byte) (normalize.Raw, error) {
	raw := normalize.Raw{}
	if len(bytes.TrimSpace(body)) == 0 {
		return raw, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &normalize.ValidationError{Message: "request body must be a JSON object"}
		}
		return nil, errBadJSON
	}
	if raw == nil {
		raw = normalize.Raw{}
	}
	return raw, nil
}
