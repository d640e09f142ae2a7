package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// ErrVerifyParse indicates the rendered page could not be parsed or queried.
var ErrVerifyParse = errors.New("failed to parse rendered page")

// CountContainers returns the number of rendered manual containers in page.
// Only the first class of a multi-class container is used in the selector.
func CountContainers(page, class string) (int, error) {
	if err := ValidateContainerClass(class); err != nil {
		return 0, err
	}

	sel, err := cascadia.Compile("div." + strings.Fields(class)[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrVerifyParse, err)
	}

	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrVerifyParse, err)
	}

	return len(sel.MatchAll(doc)), nil
}
