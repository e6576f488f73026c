//go:build !desktop

package viewer

import (
	"github.com/matzehuels/viewgrid/pkg/compose"
	"github.com/matzehuels/viewgrid/pkg/errors"
)

func newDesktop(config) (compose.Interactor, error) {
	return nil, errors.New(errors.ErrCodeUnsupported, "desktop viewer not built in; rebuild with -tags desktop or use --viewer term")
}
