// README: Gazetteer storage contract and the embedded dataset.
package sites

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
)

// Store lists every known site.
type Store interface {
	List(ctx context.Context) ([]Site, error)
}

//go:embed data/sites.json
var builtinJSON []byte

// Builtin returns a fresh copy of the embedded dataset.
func Builtin() []Site {
	var out []Site
	if err := json.Unmarshal(builtinJSON, &out); err != nil {
		panic(fmt.Sprintf("sites: embedded dataset is invalid: %v", err))
	}
	return out
}

// StaticStore serves a fixed list.
type StaticStore struct {
	sites []Site
}

// NewStaticStore uses the embedded dataset when given no sites.
func NewStaticStore(list ...Site) *StaticStore {
	if len(list) == 0 {
		list = Builtin()
	}
	return &StaticStore{sites: list}
}

func (s *StaticStore) List(context.Context) ([]Site, error) {
	out := make([]Site, len(s.sites))
	copy(out, s.sites)
	return out, nil
}
