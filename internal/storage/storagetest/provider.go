// Package storagetest provides an in-memory media provider for tests.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/stemsi/rekamsehat-backend/internal/model"
)

// Provider is an in-memory media provider. Destroy fails for every public id
// in FailOn and Upload fails with UploadErr when it is set.
type Provider struct {
	FailOn    map[string]bool
	UploadErr error

	mu        sync.Mutex
	uploads   int
	destroyed []string
}

func NewProvider() *Provider {
	return &Provider{FailOn: map[string]bool{}}
}

func (p *Provider) Upload(_ context.Context, r io.Reader, filename string) (*model.UploadResult, error) {
	if p.UploadErr != nil {
		return nil, p.UploadErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.uploads++
	id := fmt.Sprintf("uploads/file%d", p.uploads)
	return &model.UploadResult{
		PublicID:         id,
		ResourceType:     "raw",
		Bytes:            len(data),
		URL:              "http://cdn.test/" + id,
		SecureURL:        "https://cdn.test/" + id,
		OriginalFilename: filename,
	}, nil
}

// Uploads reports how many uploads succeeded.
func (p *Provider) Uploads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.uploads
}

func (p *Provider) Destroy(_ context.Context, publicID, _ string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailOn[publicID] {
		return "", errors.New("provider unavailable")
	}
	p.destroyed = append(p.destroyed, publicID)
	return "ok", nil
}

// DestroyedSet returns the public ids destroyed so far.
func (p *Provider) DestroyedSet() map[string]bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := map[string]bool{}
	for _, id := range p.destroyed {
		out[id] = true
	}
	return out
}
