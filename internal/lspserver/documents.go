package lspserver

import "sync"

// Document is one open text document, synchronized via textDocument/didOpen
// and didChange and dropped on didClose (spec.md §4.6's document-sync notifications always
// replace the whole buffer, since this core owns no incremental diff
// engine).
type Document struct {
	URI        string
	LanguageID string
	Version    int32
	Content    string
}

// DocumentStore tracks every currently-open document, keyed by URI.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewDocumentStore returns an empty store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*Document)}
}

// Open records a newly opened document.
func (s *DocumentStore) Open(uri, languageID string, version int32, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = &Document{URI: uri, LanguageID: languageID, Version: version, Content: text}
}

// Update replaces an open document's content and version. It is a no-op
// if the document is not open (a didChange racing a didClose).
func (s *DocumentStore) Update(uri string, version int32, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		return
	}
	doc.Content = text
	if version != 0 {
		doc.Version = version
	}
}

// Close removes a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

// Get returns the open document for uri, or nil if it is not open.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs[uri]
}

// All returns every currently open document, in no particular order.
func (s *DocumentStore) All() []*Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Document, 0, len(s.docs))
	for _, d := range s.docs {
		out = append(out, d)
	}
	return out
}
