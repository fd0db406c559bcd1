package badger

import "github.com/poiesic/toolshelf/storage"

// NewMemoryRepository creates an in-memory item repository for testing.
// Caller must close the backend when done.
func NewMemoryRepository() (storage.ItemRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, err
	}

	repo, err := NewItemRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}

	return repo, backend, nil
}
