package region

import (
	"strings"

	"github.com/pkg/errors"
)

var constants = map[string]Constants{
	EU868.Name: EU868,
}

// GetConstants returns the constants of the region with the given name.
func GetConstants(name string) (Constants, error) {
	c, ok := constants[strings.ToUpper(name)]
	if !ok {
		return Constants{}, errors.Errorf("unknown region: %s", name)
	}
	return c, nil
}
