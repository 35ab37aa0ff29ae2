package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/CerenB/miss-hit/internal/diag"
	"github.com/CerenB/miss-hit/internal/source"
)

// Recognized config file names: the overt variant and the hidden variant.
// When both exist in one directory the overt one wins.
const (
	OvertFileName  = "miss_hit.cfg"
	HiddenFileName = ".miss_hit"
)

// Node is one directory's point in the configuration hierarchy.
type Node struct {
	Dir    string
	Parent *Node
	cfg    *nodeConfig // nil when the directory has no config file
}

// Tree mirrors the directory hierarchy under a root and resolves the
// effective options for any file beneath it. It is immutable after
// BuildTree returns.
type Tree struct {
	fs       *source.FileSet
	root     string
	nodes    map[string]*Node
	excluded map[string]bool
}

// BuildTree parses every config file from the filesystem root down
// through root's subtree, pruning excluded directories. Config files of
// root's ancestors participate so a project-level file above the target
// directory still applies. Any parse or validation problem aborts the
// build; the details have been reported through r.
func BuildTree(fs *source.FileSet, root string, r diag.Reporter) (*Tree, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", root, err)
	}
	absRoot = norm(absRoot)

	t := &Tree{
		fs:       fs,
		root:     absRoot,
		nodes:    make(map[string]*Node),
		excluded: make(map[string]bool),
	}

	// Ancestors first, top down, so each node can link to its parent.
	var parent *Node
	for _, dir := range ancestorChain(absRoot) {
		node, err := t.loadNode(dir, parent, r)
		if err != nil {
			return nil, err
		}
		parent = node
	}

	if err := t.descend(absRoot, parent, r); err != nil {
		return nil, err
	}
	return t, nil
}

// Root returns the normalized absolute root directory.
func (t *Tree) Root() string { return t.root }

// Excluded reports whether the directory was pruned by an exclude_dir
// declaration. Everything beneath an excluded directory is excluded too.
func (t *Tree) Excluded(dir string) bool {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	for d := norm(abs); ; d = parentDir(d) {
		if t.excluded[d] {
			return true
		}
		if parentDir(d) == d {
			return false
		}
	}
}

// EffectiveOptions resolves the option snapshot for a file: scalars by
// nearest-enclosing-wins, cumulative keys collected over the whole chain.
func (t *Tree) EffectiveOptions(filePath string) Options {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return DefaultOptions()
	}
	node := t.nearestNode(filepath.Dir(abs))

	opts := DefaultOptions()
	seenBool := make(map[string]bool)
	seenInt := make(map[string]bool)
	seenRegex := make(map[string]bool)

	for n := node; n != nil; n = n.Parent {
		if n.cfg == nil {
			continue
		}
		for key, v := range n.cfg.bools {
			if seenBool[key] {
				continue
			}
			seenBool[key] = true
			switch key {
			case "enable":
				opts.Enable = v
			case "octave":
				opts.Octave = v
			case "ignore_pragmas":
				opts.IgnorePragmas = v
			case "copyright_in_embedded_code":
				opts.CopyrightInEmbeddedCode = v
			}
		}
		for key, v := range n.cfg.ints {
			if seenInt[key] {
				continue
			}
			seenInt[key] = true
			switch key {
			case "tab_width":
				opts.TabWidth = v
			case "line_length":
				opts.LineLength = v
			case "file_length":
				opts.FileLength = v
			}
		}
		for key, v := range n.cfg.regexes {
			if seenRegex[key] {
				continue
			}
			seenRegex[key] = true
			switch key {
			case "regex_class_name":
				opts.RegexClassName = v
			case "regex_function_name":
				opts.RegexFunctionName = v
			case "regex_nested_name":
				opts.RegexNestedName = v
			case "regex_method_name":
				opts.RegexMethodName = v
			}
		}

		opts.CopyrightEntities = append(opts.CopyrightEntities, n.cfg.copyrightEntities...)

		// Within one file the later toggle wins, so append reversed;
		// RuleActive takes the first match.
		for i := len(n.cfg.toggles) - 1; i >= 0; i-- {
			opts.toggles = append(opts.toggles, n.cfg.toggles[i])
		}
	}

	return opts
}

// nearestNode finds the node for dir or its closest ancestor.
func (t *Tree) nearestNode(dir string) *Node {
	for d := norm(dir); ; d = parentDir(d) {
		if n, ok := t.nodes[d]; ok {
			return n
		}
		if parentDir(d) == d {
			return nil
		}
	}
}

// descend runs the pruning DFS below root.
func (t *Tree) descend(dir string, parent *Node, r diag.Reporter) error {
	node, err := t.loadNode(dir, parent, r)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		r.Report(diag.NewError(diag.CfgIO, source.Span{},
			fmt.Sprintf("cannot read directory %s: %v", dir, err)))
		return errBadConfig
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	excludedHere := make(map[string]bool)
	if node.cfg != nil {
		for _, name := range node.cfg.excludeDirs {
			excludedHere[name] = true
		}
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		child := norm(filepath.Join(dir, e.Name()))
		if excludedHere[e.Name()] {
			// Pruned for good: nothing beneath is visited, parsed, or
			// re-enabled.
			t.excluded[child] = true
			continue
		}
		if err := t.descend(child, node, r); err != nil {
			return err
		}
	}
	return nil
}

// loadNode creates the node for dir, parsing its config file if present.
// Calling it twice for one directory returns the existing node.
func (t *Tree) loadNode(dir string, parent *Node, r diag.Reporter) (*Node, error) {
	dir = norm(dir)
	if n, ok := t.nodes[dir]; ok {
		return n, nil
	}

	node := &Node{Dir: dir, Parent: parent}
	t.nodes[dir] = node

	cfgPath := ""
	for _, name := range []string{OvertFileName, HiddenFileName} {
		candidate := filepath.Join(dir, name)
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			cfgPath = candidate
			break
		}
	}
	if cfgPath == "" {
		return node, nil
	}

	id, err := t.fs.Load(cfgPath)
	if err != nil {
		r.Report(diag.NewError(diag.CfgIO, source.Span{},
			fmt.Sprintf("cannot read %s: %v", cfgPath, err)))
		return nil, errBadConfig
	}

	entries, err := parseEntries(t.fs.Get(id), r)
	if err != nil {
		return nil, err
	}
	cfg, err := applyEntries(entries, r)
	if err != nil {
		return nil, err
	}
	node.cfg = cfg
	return node, nil
}

// ancestorChain lists dir's ancestors from the filesystem root down to
// dir's parent.
func ancestorChain(dir string) []string {
	var chain []string
	for d := parentDir(dir); ; d = parentDir(d) {
		chain = append(chain, d)
		if parentDir(d) == d {
			break
		}
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

func norm(p string) string {
	return filepath.Clean(p)
}

func parentDir(p string) string {
	return norm(filepath.Dir(p))
}
