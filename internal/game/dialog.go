package game

import (
	"errors"
	"fmt"

	"github.com/ncruces/zenity"
)

// pickImages asks for one or more image files. A cancelled dialog returns
// nil, nil.
func pickImages() ([]string, error) {
	paths, err := zenity.SelectFileMultiple(
		zenity.Title("Open Card Images"),
		zenity.FileFilters{{
			Name:     "Images",
			Patterns: []string{"*.png", "*.jpg", "*.jpeg"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil, nil
		}
		return nil, err
	}

	fmt.Printf("Selected %d image(s)\n", len(paths))
	return paths, nil
}
