package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/stemsi/rekamsehat-backend/internal/model"
	"google.golang.org/api/iterator"
)

// MigrateLegacyFoto finds data_spesifik documents whose foto is a bare URL
// string and, when apply is set, rewrites it as {url, public_id}. It returns
// the number of legacy documents found.
func MigrateLegacyFoto(ctx context.Context, client *firestore.Client, apply bool) (int, error) {
	iter := client.Collection(colDataSpesifik).Documents(ctx)
	defer iter.Stop()

	var bw *firestore.BulkWriter
	var jobs []*firestore.BulkWriterJob
	if apply {
		bw = client.BulkWriter(ctx)
	}

	found := 0
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			if bw != nil {
				bw.End()
			}
			return found, fmt.Errorf("scan data spesifik: %w", err)
		}

		raw, ok := snap.Data()["foto"].(string)
		if !ok {
			continue
		}
		found++
		if !apply {
			continue
		}

		foto := map[string]interface{}{"url": raw, "public_id": ""}
		if f := model.ParseFoto(raw); f == nil {
			foto = nil
		}
		job, err := bw.Update(snap.Ref, []firestore.Update{{Path: "foto", Value: foto}})
		if err != nil {
			bw.End()
			return found, fmt.Errorf("queue update %s: %w", snap.Ref.ID, err)
		}
		jobs = append(jobs, job)
	}

	if bw == nil {
		return found, nil
	}
	bw.End()
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return found, fmt.Errorf("rewrite foto: %w", err)
		}
	}
	return found, nil
}
