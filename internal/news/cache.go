package news

import (
	"encoding/json"
	"os"
	"path/filepath"

	"newsopoly/internal/game"
)

// Cache keeps the last successfully classified batch on disk so an
// offline session still gets real-looking headlines instead of the
// built-in fallbacks.
type Cache struct {
	path string
}

// NewCache stores events under dir; an empty dir means ~/.npy.
func NewCache(dir string) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".npy")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &Cache{path: filepath.Join(dir, "events.json")}, nil
}

func (c *Cache) Load() ([]game.MarketEvent, error) {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var events []game.MarketEvent
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Cache) Save(events []game.MarketEvent) error {
	raw, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, raw, 0o600)
}
