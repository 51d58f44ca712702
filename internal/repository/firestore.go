package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Collection names, unchanged from the documents the web client wrote.
const (
	colUsers         = "users"
	colPendingUsers  = "pending_users"
	colDataSpesifik  = "data_spesifik"
	colTingkatan     = "tingkatan"
	colDataMateri    = "data_materi"
	colJenisPenyakit = "jenis_penyakit"
	colObat          = "obat"
	colDataPenyakit  = "data_penyakit"
	colDataUmum      = "data_umum"
)

// Common repository errors.
var (
	ErrNotFound      = errors.New("document not found")
	ErrAlreadyExists = errors.New("document already exists")
)

// mapError translates Firestore gRPC status codes into repository errors.
func mapError(err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrAlreadyExists
	}
	return err
}

// count runs a count aggregation over q.
func count(ctx context.Context, q firestore.Query) (int, error) {
	results, err := q.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("count aggregation: %w", err)
	}
	v, ok := results["all"].(*firestorepb.Value)
	if !ok {
		return 0, errors.New("count aggregation: unexpected result type")
	}
	return int(v.GetIntegerValue()), nil
}

// exists reports whether q matches at least one document.
func exists(ctx context.Context, q firestore.Query) (bool, error) {
	docs, err := q.Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return false, err
	}
	return len(docs) > 0, nil
}

// toUpdates turns a field map into Firestore updates and stamps updated_at.
func toUpdates(fields map[string]interface{}) []firestore.Update {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	return append(updates, firestore.Update{Path: "updated_at", Value: time.Now()})
}

// deleteCollection removes every document of col with a BulkWriter.
func deleteCollection(ctx context.Context, client *firestore.Client, col *firestore.CollectionRef) error {
	refs, err := col.DocumentRefs(ctx).GetAll()
	if err != nil {
		return fmt.Errorf("list %s: %w", col.ID, err)
	}
	if len(refs) == 0 {
		return nil
	}

	bw := client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(refs))
	for _, ref := range refs {
		job, err := bw.Delete(ref)
		if err != nil {
			bw.End()
			return fmt.Errorf("queue delete %s: %w", ref.ID, err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return fmt.Errorf("delete %s: %w", col.ID, err)
		}
	}
	return nil
}
