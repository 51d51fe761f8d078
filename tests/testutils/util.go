package testutils

import (
	"github.com/containerd/nerdctl/mod/tigron/test"

	"github.com/mycophonic/agar/pkg/agar"
)

// Setup creates a test case configured to run the wavedit binary.
func Setup() *test.Case {
	return agar.Setup("wavedit")
}
