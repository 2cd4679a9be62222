// Package catalog serves the fixed filament catalogue.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/getmockd/printmock/pkg/domain"
)

//go:embed filaments.json
var filamentsJSON []byte

var (
	loadOnce  sync.Once
	filaments []domain.Filament
	loadErr   error
)

func load() {
	loadErr = json.Unmarshal(filamentsJSON, &filaments)
	if loadErr != nil {
		loadErr = fmt.Errorf("catalog: decode filaments.json: %w", loadErr)
	}
}

// Filaments returns a copy of the catalogue.
func Filaments() ([]domain.Filament, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}
	return append([]domain.Filament{}, filaments...), nil
}

// ByProfile returns catalogue entries for a material profile, ignoring case.
func ByProfile(profile string) ([]domain.Filament, error) {
	all, err := Filaments()
	if err != nil {
		return nil, err
	}
	result := make([]domain.Filament, 0, len(all))
	for _, f := range all {
		if strings.EqualFold(f.Profile, profile) {
			result = append(result, f)
		}
	}
	return result, nil
}
