// Package worker drains the export queue, writing archived reports out
// through a sink.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"finlens/internal/amqp"
	"finlens/internal/log"
	"finlens/internal/sink"
	"finlens/internal/storage"
)

// ReportStore is the slice of the archive the worker needs.
type ReportStore interface {
	GetReport(ctx context.Context, id int64) (storage.ReportRecord, error)
	MarkExported(ctx context.Context, id int64) error
}

type ExportWorker struct {
	store ReportStore
	sink  sink.Sink
	log   *log.Logger
}

func NewExportWorker(store ReportStore, s sink.Sink, logger *log.Logger) *ExportWorker {
	return &ExportWorker{
		store: store,
		sink:  s,
		log:   logger.WithComponent(log.ComponentWorker),
	}
}

// Handle exports one archived report. A record that is already exported
// is skipped, so redelivered messages stay harmless. A missing record is
// not an error either; requeueing it would loop forever.
func (w *ExportWorker) Handle(ctx context.Context, msg *amqp.ReportExportMessage) error {
	rec, err := w.store.GetReport(ctx, msg.ReportID)
	if err != nil {
		if errors.Is(err, storage.ErrReportNotFound) {
			w.log.Warn("archived report vanished, dropping message",
				log.FieldReportID, msg.ReportID,
				log.FieldReportKind, msg.Kind)
			return nil
		}
		return fmt.Errorf("load report %d: %w", msg.ReportID, err)
	}

	if rec.ExportedAt != nil {
		w.log.Info("report already exported, skipping",
			log.FieldReportID, rec.ID,
			log.FieldReportKind, rec.Kind)
		return nil
	}

	name := fmt.Sprintf("%s_%d.json", rec.Kind, rec.ID)
	path, err := w.sink.Persist(name, json.RawMessage(rec.Payload))
	if err != nil {
		return fmt.Errorf("persist report %d: %w", rec.ID, err)
	}

	if err := w.store.MarkExported(ctx, rec.ID); err != nil {
		return fmt.Errorf("mark report %d exported: %w", rec.ID, err)
	}

	w.log.Info("exported report",
		log.FieldReportID, rec.ID,
		log.FieldReportKind, rec.Kind,
		"path", path)
	return nil
}
