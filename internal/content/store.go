package content

import (
	"io/fs"
	"log"
	"sync"
)

// Store serves the current Site snapshot and swaps it on reload.
type Store struct {
	fsys fs.FS
	load func(fs.FS) (*Site, error)

	// reloadMu serializes Load and swap so an older tree never replaces a newer one.
	reloadMu sync.Mutex

	mu   sync.RWMutex
	site *Site
}

// NewStore loads fsys once. A store that fails its first load is unusable.
func NewStore(fsys fs.FS) (*Store, error) {
	site, err := Load(fsys)
	if err != nil {
		return nil, err
	}
	return &Store{fsys: fsys, load: Load, site: site}, nil
}

// Site returns the current snapshot. Callers must not mutate it.
func (s *Store) Site() *Site {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.site
}

// Reload re-reads the content tree. On error the previous snapshot stays live.
func (s *Store) Reload() error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	site, err := s.load(s.fsys)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.site = site
	s.mu.Unlock()
	log.Printf("Content reloaded: %d posts, %d projects", len(site.Posts), len(site.Projects))
	return nil
}
