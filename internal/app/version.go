package app

import (
	"fmt"
	"io"
	"strings"

	"goasterix/internal/asterix/categories"
)

// Version information (set by build flags)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// ShowVersion writes version information and the supported category editions
func ShowVersion(w io.Writer) {
	editions := make([]string, 0, 8)
	for _, s := range categories.All() {
		editions = append(editions, fmt.Sprintf("CAT%03d/%s", s.Category(), s.Edition()))
	}

	fmt.Fprintf(w, "goasterix ASTERIX codec %s (built %s, commit %s)\n", Version, BuildTime, GitCommit)
	fmt.Fprintf(w, "Categories: %s\n", strings.Join(editions, " "))
}
