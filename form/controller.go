package form

import (
	"context"

	"github.com/denismitr/estatebook/record"
	"github.com/denismitr/estatebook/schema"
	"github.com/denismitr/estatebook/store"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Controller owns the single form that may be open at a time.
type Controller struct {
	store *store.Store
	log   *zap.Logger
	form  *Form
}

func NewController(s *store.Store, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{store: s, log: log}
}

// Open starts an add form when rec is nil, otherwise an edit form for the
// stored record with rec's identifier. Any open form is discarded.
func (c *Controller) Open(d schema.Dataset, rec *record.Record) (*Form, error) {
	if !d.Valid() {
		return nil, errors.Wrapf(schema.ErrUnknownDataset, "%q", d)
	}

	if rec == nil {
		c.form = New(d, nil, -1)
		return c.form, nil
	}

	i, err := c.store.IndexOf(d, rec.ID())
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s form", d)
	}

	current, err := c.store.At(d, i)
	if err != nil {
		return nil, err
	}

	c.form = New(d, current, i)
	return c.form, nil
}

// OpenAt is Open for the record at position i of d.
func (c *Controller) OpenAt(d schema.Dataset, i int) (*Form, error) {
	if !d.Valid() {
		return nil, errors.Wrapf(schema.ErrUnknownDataset, "%q", d)
	}

	rec, err := c.store.At(d, i)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s form", d)
	}

	c.form = New(d, rec, i)
	return c.form, nil
}

func (c *Controller) Active() bool {
	return c.form != nil
}

// Form returns the open form or nil.
func (c *Controller) Form() *Form {
	return c.form
}

func (c *Controller) Cancel() {
	c.form = nil
}

// Save applies the open form to the store and closes it. A failed save
// leaves the form open. Saving without an open form does nothing.
func (c *Controller) Save(ctx context.Context) error {
	f := c.form
	if f == nil {
		return nil
	}

	r := f.Record()

	var err error
	switch f.Mode() {
	case Add:
		err = c.store.InsertFront(ctx, f.Dataset(), r)
	case Edit:
		err = c.store.Replace(ctx, f.Dataset(), f.ID(), r)
	}

	if err != nil {
		c.log.Error("could not save form",
			zap.String("dataset", f.Dataset().String()),
			zap.String("mode", f.Mode().String()),
			zap.Error(err))
		return err
	}

	c.log.Info("record saved",
		zap.String("dataset", f.Dataset().String()),
		zap.String("mode", f.Mode().String()),
		zap.String("id", r.ID()))

	c.form = nil
	return nil
}
