package client

import (
	"context"
	"fmt"
	"io"
)

// API is the part of Client the controller drives.
type API interface {
	List(ctx context.Context, collection string) ([]Record, error)
	Create(ctx context.Context, collection string, payload map[string]any) (Record, error)
	Update(ctx context.Context, collection, id string, payload map[string]any) (Record, error)
	Delete(ctx context.Context, collection, id string) error
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}

// Image is an optional file sent before a record is saved.
type Image struct {
	Name    string
	Content io.Reader
}

// Controller holds the admin panel session: the current section and the id being edited.
// It is not safe for concurrent use.
type Controller struct {
	api       API
	section   Section
	editingID string
}

// NewController starts on the donors section with nothing being edited.
func NewController(api API) *Controller {
	return &Controller{api: api, section: SectionDonors}
}

// Section returns the current section.
func (c *Controller) Section() Section { return c.section }

// EditingID returns the id being edited, or "" in create mode.
func (c *Controller) EditingID() string { return c.editingID }

// SwitchSection changes tab and leaves edit mode.
func (c *Controller) SwitchSection(s Section) {
	c.section = s
	c.editingID = ""
}

// Records returns the raw records of the current section.
func (c *Controller) Records(ctx context.Context) ([]Record, error) {
	return c.api.List(ctx, c.section.Collection())
}

// Load lists the current section.
func (c *Controller) Load(ctx context.Context) ([]ListItem, error) {
	recs, err := c.Records(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]ListItem, 0, len(recs))
	for _, rec := range recs {
		items = append(items, c.section.Describe(rec))
	}
	return items, nil
}

// StartEdit enters edit mode for rec and returns the values to populate the form with.
func (c *Controller) StartEdit(rec Record) map[string]string {
	c.editingID = rec.ID()
	return c.section.FormValues(rec)
}

// Cancel leaves edit mode.
func (c *Controller) Cancel() {
	c.editingID = ""
}

// Submit saves form. When img is set it is uploaded first and its URL stored as imagen;
// a failed upload aborts the save. The record is updated in edit mode and created otherwise.
// Edit mode ends only when the write succeeds.
func (c *Controller) Submit(ctx context.Context, form map[string]any, img *Image) (Record, error) {
	payload := make(map[string]any, len(form)+1)
	for k, v := range form {
		if k == "_id" {
			continue
		}
		payload[k] = v
	}

	if img != nil {
		url, err := c.api.Upload(ctx, img.Name, img.Content)
		if err != nil {
			return nil, fmt.Errorf("image upload failed: %w", err)
		}
		payload["imagen"] = url
	}

	coll := c.section.Collection()
	var (
		rec Record
		err error
	)
	if c.editingID != "" {
		rec, err = c.api.Update(ctx, coll, c.editingID, payload)
	} else {
		rec, err = c.api.Create(ctx, coll, payload)
	}
	if err != nil {
		return nil, err
	}
	c.editingID = ""
	return rec, nil
}

// Delete removes id from the current section. Deleting the record being edited leaves edit mode.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.api.Delete(ctx, c.section.Collection(), id); err != nil {
		return err
	}
	if id == c.editingID {
		c.editingID = ""
	}
	return nil
}
