// Command ctfmt-vet reports ctfmt templates that cannot compile.
//
//	go vet -vettool=$(which ctfmt-vet) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"ctfmt/internal/vetcheck"
)

func main() {
	singlechecker.Main(vetcheck.Analyzer)
}
