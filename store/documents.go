package store

import (
	"sort"
	"sync"

	"deepresearch/types"
)

// Documents is the thread-safe registry of uploaded PDF metadata. File
// content lives on disk (and optionally in S3); chunks live in the
// retrieval index.
type Documents struct {
	mu   sync.RWMutex
	docs map[string]types.Document
	// paths maps document id to the stored file path so deletes can
	// clean up.
	paths map[string]string
}

// NewDocuments creates an empty registry.
func NewDocuments() *Documents {
	return &Documents{
		docs:  make(map[string]types.Document),
		paths: make(map[string]string),
	}
}

// Put stores a document's metadata and file path (thread-safe).
func (d *Documents) Put(doc types.Document, path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.docs[doc.ID] = doc
	d.paths[doc.ID] = path
}

// Has reports whether the document id is known (thread-safe).
func (d *Documents) Has(id string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.docs[id]
	return ok
}

// Get returns a document's metadata (thread-safe).
func (d *Documents) Get(id string) (types.Document, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	doc, ok := d.docs[id]
	return doc, ok
}

// Path returns the stored file path for a document (thread-safe).
func (d *Documents) Path(id string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	path, ok := d.paths[id]
	return path, ok
}

// List returns all documents ordered by upload time, newest first
// (thread-safe).
func (d *Documents) List() []types.Document {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]types.Document, 0, len(d.docs))
	for _, doc := range d.docs {
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	return out
}

// Delete removes a document's metadata and returns its file path
// (thread-safe).
func (d *Documents) Delete(id string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.docs[id]; !ok {
		return "", false
	}
	path := d.paths[id]
	delete(d.docs, id)
	delete(d.paths, id)
	return path, true
}
