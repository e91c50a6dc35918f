package state

import (
	"errors"
	"time"

	"github.com/danielpatrickdp/cipher-nback/internal/config"
)

// #region snapshot
// Snapshot is everything the store holds, with write times.
type Snapshot struct {
	Rating          int               `json:"rating"`
	RatingUpdatedAt time.Time         `json:"rating_updated_at"`
	Config          config.GameConfig `json:"config"`
	ConfigUpdatedAt time.Time         `json:"config_updated_at"`
	Corrupt         []string          `json:"corrupt,omitempty"` // records replaced by defaults
}

// #endregion snapshot

// #region errors
var (
	// ErrNotFound means the value was never saved.
	ErrNotFound = errors.New("not persisted")
	// ErrCorrupt means a stored value could not be decoded or failed validation.
	ErrCorrupt = errors.New("corrupt persisted value")
)

// #endregion errors
