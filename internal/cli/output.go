package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/dirsnap/internal/config"
	"github.com/vvka-141/dirsnap/internal/snapshot"
	"github.com/vvka-141/dirsnap/internal/tui"
	"github.com/vvka-141/dirsnap/pkg/dirsnap"
)

// entryDocument is one entry in structured output.
type entryDocument struct {
	Index int    `json:"index" yaml:"index"`
	Value string `json:"value" yaml:"value"`
}

// snapshotDocument is the structured form of a snapshot listing.
type snapshotDocument struct {
	ID      string          `json:"id" yaml:"id"`
	Path    string          `json:"path" yaml:"path"`
	Options dirsnap.Options `json:"options" yaml:"options"`
	Count   int             `json:"count" yaml:"count"`
	Entries []entryDocument `json:"entries" yaml:"entries"`
}

func newSnapshotDocument(snap *snapshot.Snapshot) snapshotDocument {
	doc := snapshotDocument{
		ID:      snap.ID().String(),
		Path:    snap.Path(),
		Options: snap.Options(),
		Count:   snap.Count(),
		Entries: make([]entryDocument, 0, snap.Count()),
	}
	for i, value := range snap.All() {
		doc.Entries = append(doc.Entries, entryDocument{Index: i, Value: value})
	}
	return doc
}

// writeStructured encodes v as indented JSON or YAML.
func writeStructured(w io.Writer, format string, v interface{}) error {
	switch format {
	case config.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case config.FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unsupported structured format %q", format)
	}
}

// writeEntries prints "index<TAB>value" lines.
func writeEntries(w io.Writer, snap *snapshot.Snapshot, palette tui.Palette) error {
	for i, value := range snap.All() {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", palette.Index.Render(fmt.Sprint(i)), value); err != nil {
			return err
		}
	}
	return nil
}

// writeTree renders the tree with box-drawing branches. Directories carry a
// trailing separator.
func writeTree(w io.Writer, tree dirsnap.Tree, palette tui.Palette) error {
	root, node := tree.Root()
	var b strings.Builder
	b.WriteString(palette.Dir.Render(root))
	b.WriteString("\n")
	renderNode(&b, node, "", palette)
	_, err := io.WriteString(w, b.String())
	return err
}

func renderNode(b *strings.Builder, node *dirsnap.TreeNode, prefix string, palette tui.Palette) {
	if node == nil {
		return
	}
	children := node.Children()
	for i, child := range children {
		last := i == len(children)-1
		branch, indent := tui.SymbolBranch, tui.SymbolPipe
		if last {
			branch, indent = tui.SymbolLastBranch, tui.SymbolSpace
		}

		b.WriteString(palette.Branch.Render(prefix + branch))
		if child.IsDir() {
			b.WriteString(palette.Dir.Render(child.Name + "/"))
			b.WriteString("\n")
			renderNode(b, child.Node, prefix+indent, palette)
			continue
		}
		b.WriteString(palette.File.Render(child.Name))
		b.WriteString("\n")
	}
}
