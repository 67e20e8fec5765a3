// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/YuvrajShekhar/docmanager-client/internal/adapter"
	"github.com/YuvrajShekhar/docmanager-client/internal/form"
	"github.com/YuvrajShekhar/docmanager-client/internal/logger"
	"github.com/YuvrajShekhar/docmanager-client/internal/utils"
	"github.com/YuvrajShekhar/docmanager-client/models"
)

// DefaultBatchDelay is the pause between two generation requests of a batch.
const DefaultBatchDelay = 500 * time.Millisecond

// BatchTemplate is the form a batch is generated from.
type BatchTemplate struct {
	Filename     string
	Placeholders []models.Placeholder
	// InitialValues are merged under every item's values.
	InitialValues models.FormValues
}

// BatchOptions tunes one GenerateAll run. All callbacks are optional and run
// on the generating goroutine.
type BatchOptions struct {
	// Delay overrides the driver's inter-request delay when positive.
	Delay         time.Duration
	OnItemSettled func(item models.BatchItem)
	OnProgress    func(progress models.BatchProgress)
	OnComplete    func(items []models.BatchItem)
}

// BatchDriver generates one document per item, strictly one request at a
// time. Items are processed in list order and only while pending, so a second
// run after a cancellation picks up where the first one stopped.
type BatchDriver struct {
	generator GenerationService
	ids       *utils.UUIDGenerator
	delay     time.Duration
	logger    *logger.Logger

	mu       sync.Mutex
	items    []models.BatchItem
	seq      int
	running  bool
	canceled bool
	cancel   context.CancelFunc
}

// NewBatchDriver constructs a [BatchDriver]. A non-positive delay selects
// [DefaultBatchDelay].
func NewBatchDriver(generator GenerationService, delay time.Duration, logger *logger.Logger) *BatchDriver {
	if delay <= 0 {
		delay = DefaultBatchDelay
	}
	return &BatchDriver{
		generator: generator,
		ids:       utils.NewUUIDGenerator(),
		delay:     delay,
		logger:    logger,
	}
}

// AddItem appends a pending item and returns its id.
func (d *BatchDriver) AddItem(values models.FormValues) string {
	return d.AddItems(values)[0]
}

// AddItems appends one pending item per value set and returns their ids.
func (d *BatchDriver) AddItems(values ...models.FormValues) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	ids := make([]string, 0, len(values))
	for _, v := range values {
		id := d.ids.Generate()
		d.seq++
		d.items = append(d.items, models.BatchItem{
			ID:     id,
			Seq:    d.seq,
			Values: v.Clone(),
			Status: models.BatchPending,
		})
		ids = append(ids, id)
	}
	return ids
}

// RemoveItem deletes the item with id.
func (d *BatchDriver) RemoveItem(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexOf(id)
	if i < 0 {
		return ErrItemNotFound
	}
	d.items = append(d.items[:i], d.items[i+1:]...)
	return nil
}

// UpdateItem replaces the values of id and puts it back to pending. The item
// being generated cannot be edited.
func (d *BatchDriver) UpdateItem(id string, values models.FormValues) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexOf(id)
	if i < 0 {
		return ErrItemNotFound
	}
	if d.items[i].Status == models.BatchGenerating {
		return ErrBatchRunning
	}

	d.items[i] = models.BatchItem{
		ID:     id,
		Seq:    d.items[i].Seq,
		Values: values.Clone(),
		Status: models.BatchPending,
	}
	return nil
}

// Clear removes every item.
func (d *BatchDriver) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.items = nil
}

// ResetStatuses puts every item back to pending and drops results.
func (d *BatchDriver) ResetStatuses() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.items {
		d.items[i].Status = models.BatchPending
		d.items[i].Error = ""
		d.items[i].Filename = ""
	}
}

// Items returns a snapshot of the items in list order.
func (d *BatchDriver) Items() []models.BatchItem {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]models.BatchItem, len(d.items))
	for i, item := range d.items {
		item.Values = item.Values.Clone()
		out[i] = item
	}
	return out
}

// Progress returns the aggregate state of the items.
func (d *BatchDriver) Progress() models.BatchProgress {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.progress()
}

// PendingCount returns the number of items still to generate.
func (d *BatchDriver) PendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := 0
	for _, item := range d.items {
		if item.Status == models.BatchPending {
			n++
		}
	}
	return n
}

// Running reports whether GenerateAll is in progress.
func (d *BatchDriver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.running
}

// Cancel stops a running batch. No further item is started and the request
// in flight is aborted; its item returns to pending. Items that already
// settled keep their status.
func (d *BatchDriver) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return
	}
	d.canceled = true
	if d.cancel != nil {
		d.cancel()
	}
}

// GenerateAll generates every pending item. It returns the final progress,
// and [ErrBatchCanceled] when the run was cancelled. A second call while a
// run is active fails with [ErrBatchRunning].
//
// An authentication failure stops the run: the item goes back to pending
// together with the rest and the error is returned so the caller can end
// the session.
func (d *BatchDriver) GenerateAll(ctx context.Context, tmpl BatchTemplate, opts BatchOptions) (models.BatchProgress, error) {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return models.BatchProgress{}, ErrBatchRunning
	}
	runCtx, cancel := context.WithCancel(ctx)
	d.running = true
	d.canceled = false
	d.cancel = cancel
	pending := d.pendingIDs()
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.running = false
		d.cancel = nil
		d.mu.Unlock()
		cancel()
	}()

	delay := d.delay
	if opts.Delay > 0 {
		delay = opts.Delay
	}

	log := d.logger.GetChildLogger()
	log.Info().Str("template", tmpl.Filename).Int("pending", len(pending)).Msg("batch generation started")

	interrupted := false
	var authErr error
	for i, id := range pending {
		if d.isCanceled() || runCtx.Err() != nil {
			interrupted = true
			break
		}

		item, ok := d.start(id)
		if !ok {
			continue
		}

		values := tmpl.InitialValues.Clone()
		for k, v := range item.Values {
			values[k] = v
		}
		values = form.NormalizeDates(tmpl.Placeholders, values)

		res, err := d.generator.Generate(utils.WithRequestID(runCtx, id), GenerateRequest{
			Filename:     tmpl.Filename,
			Placeholders: tmpl.Placeholders,
			Values:       values,
			OutputName:   batchOutputName(tmpl.Filename, item.Seq),
		})

		if err != nil && runCtx.Err() != nil {
			d.revert(id)
			interrupted = true
			break
		}
		if isAuthError(err) {
			log.Warn().Err(err).Str("item", id).Msg("batch stopped: not authenticated")
			d.revert(id)
			authErr = err
			break
		}

		settled := d.settle(id, res, err)
		if err != nil {
			log.Warn().Err(err).Str("item", id).Msg("batch item failed")
		}

		if opts.OnItemSettled != nil {
			opts.OnItemSettled(settled)
		}
		if opts.OnProgress != nil {
			opts.OnProgress(d.Progress())
		}

		if i < len(pending)-1 {
			select {
			case <-runCtx.Done():
				interrupted = true
			case <-time.After(delay):
			}
			if interrupted {
				break
			}
		}
	}

	progress := d.Progress()
	if opts.OnComplete != nil {
		opts.OnComplete(d.Items())
	}

	log.Info().
		Int("completed", progress.Completed).
		Int("failed", progress.Failed).
		Bool("canceled", interrupted).
		Bool("unauthorized", authErr != nil).
		Msg("batch generation finished")

	if authErr != nil {
		return progress, authErr
	}
	if interrupted {
		if err := ctx.Err(); err != nil {
			return progress, err
		}
		return progress, ErrBatchCanceled
	}
	return progress, nil
}

func (d *BatchDriver) isCanceled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.canceled
}

// start moves a pending item to generating.
func (d *BatchDriver) start(id string) (models.BatchItem, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexOf(id)
	if i < 0 || d.items[i].Status != models.BatchPending {
		return models.BatchItem{}, false
	}
	d.items[i].Status = models.BatchGenerating

	item := d.items[i]
	item.Values = item.Values.Clone()
	return item, true
}

func (d *BatchDriver) revert(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if i := d.indexOf(id); i >= 0 {
		d.items[i].Status = models.BatchPending
	}
}

func (d *BatchDriver) settle(id string, res GenerateResult, err error) models.BatchItem {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexOf(id)
	if i < 0 {
		return models.BatchItem{ID: id}
	}

	if err != nil {
		d.items[i].Status = models.BatchError
		d.items[i].Error = batchErrorMessage(err)
		d.items[i].Filename = ""
	} else {
		d.items[i].Status = models.BatchSuccess
		d.items[i].Error = ""
		d.items[i].Filename = res.Filename
	}

	item := d.items[i]
	item.Values = item.Values.Clone()
	return item
}

func (d *BatchDriver) pendingIDs() []string {
	var ids []string
	for _, item := range d.items {
		if item.Status == models.BatchPending {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

func (d *BatchDriver) indexOf(id string) int {
	for i, item := range d.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (d *BatchDriver) progress() models.BatchProgress {
	p := models.BatchProgress{Total: len(d.items)}
	for _, item := range d.items {
		switch item.Status {
		case models.BatchSuccess:
			p.Completed++
		case models.BatchError:
			p.Failed++
		}
	}
	if p.Total > 0 {
		p.Percent = float64(p.Settled()) / float64(p.Total) * 100
	}
	return p
}

func batchErrorMessage(err error) string {
	var fieldErr *FieldValidationError
	if errors.As(err, &fieldErr) {
		return fieldErr.Error()
	}
	return UserMessage(err)
}

func isAuthError(err error) bool {
	return errors.Is(err, adapter.ErrUnauthorized) ||
		errors.Is(err, ErrSessionExpired) ||
		errors.Is(err, ErrNotAuthenticated)
}

// batchOutputName numbers the generated file of an item by its sequence so
// removing items never makes two runs share a name.
func batchOutputName(template string, seq int) string {
	base := strings.TrimSuffix(OutputFilename(template), ".docx")
	return fmt.Sprintf("%s_%d.docx", base, seq)
}
