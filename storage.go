package quantizer

import (
	"fmt"
	"sync"
)

// configVersion is the version marker distinguishing a valid stored
// configuration from uninitialized or stale storage contents.
const configVersion = 1

// MemoryStorage is an in-memory Storage implementation with the same
// version-marker semantics as the hardware's persistent storage. It backs
// tests, the offline tools, and hosts without real storage.
type MemoryStorage struct {
	mu      sync.Mutex
	version int
	cfg     Config
	banks   [NumScaleBanks]ScaleMask
}

// NewMemoryStorage returns empty, uninitialized storage: the first
// LoadConfiguration reports ErrNoConfiguration.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// LoadConfiguration returns the stored configuration, or
// ErrNoConfiguration if none has been saved.
func (s *MemoryStorage) LoadConfiguration() (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.version != configVersion {
		return Config{}, ErrNoConfiguration
	}
	return s.cfg, nil
}

// SaveConfiguration persists the configuration and stamps the version
// marker.
func (s *MemoryStorage) SaveConfiguration(cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg = cfg
	s.version = configVersion
	return nil
}

// LoadScaleBank returns the scale preset in bank index 0-11. Banks never
// written hold the zero scale, which loads like any other.
func (s *MemoryStorage) LoadScaleBank(index int) (ScaleMask, error) {
	if index < 0 || index >= NumScaleBanks {
		return 0, fmt.Errorf("%w: %d", ErrInvalidBank, index)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.banks[index], nil
}

// SaveScaleBank stores a scale preset in bank index 0-11.
func (s *MemoryStorage) SaveScaleBank(index int, mask ScaleMask) error {
	if index < 0 || index >= NumScaleBanks {
		return fmt.Errorf("%w: %d", ErrInvalidBank, index)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.banks[index] = mask
	return nil
}

// ScaleBankOccupancyMask reports the banks holding a non-zero scale.
func (s *MemoryStorage) ScaleBankOccupancyMask() ScaleMask {
	s.mu.Lock()
	defer s.mu.Unlock()

	var occ ScaleMask
	for i, b := range s.banks {
		if !b.Empty() {
			occ |= 1 << (i + 4)
		}
	}
	return occ
}

// Reset clears everything back to the uninitialized state.
func (s *MemoryStorage) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version = 0
	s.cfg = Config{}
	s.banks = [NumScaleBanks]ScaleMask{}
}

var _ Storage = (*MemoryStorage)(nil)
