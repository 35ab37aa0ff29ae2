package driver

import (
	"path/filepath"

	"github.com/CerenB/miss-hit/internal/config"
	"github.com/CerenB/miss-hit/internal/diag"
	"github.com/CerenB/miss-hit/internal/lexer"
	"github.com/CerenB/miss-hit/internal/source"
	"github.com/CerenB/miss-hit/internal/token"
)

// TokenizeResult holds a single-file tokenization outcome.
type TokenizeResult struct {
	Path    string
	FileSet *source.FileSet
	FileID  source.FileID
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes one file under its effective configuration. The token
// stream stops at the first fatal lexical error.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	if maxDiagnostics <= 0 {
		maxDiagnostics = DefaultMaxDiagnostics
	}

	fileSet := source.NewFileSet()
	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	tree, err := config.BuildTree(fileSet, filepath.Dir(path), reporter)
	if err != nil {
		return nil, errBadConfiguration
	}
	opts := tree.EffectiveOptions(path)

	id, err := fileSet.Load(path)
	if err != nil {
		return nil, err
	}

	tokens, ok := lexer.Scan(fileSet.Get(id), lexer.Options{
		Reporter: reporter,
		Octave:   opts.Octave,
	})
	if ok {
		lexer.ScanChainedRelations(tokens, reporter)
	}
	bag.Sort()

	return &TokenizeResult{
		Path:    path,
		FileSet: fileSet,
		FileID:  id,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
