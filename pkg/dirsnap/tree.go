package dirsnap

import (
	"bytes"
	"encoding/json"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Tree maps the resolved root path to the node describing its contents.
// A snapshot tree always holds exactly one key.
type Tree map[string]*TreeNode

// Root returns the single top-level key and its node.
func (t Tree) Root() (string, *TreeNode) {
	for key, node := range t {
		return key, node
	}
	return "", nil
}

// TreeChild is one child of a TreeNode in listing order.
// Directory children carry a Key of separator+name and a nested Node.
// File children have an empty Key and a nil Node.
type TreeChild struct {
	Key  string
	Name string
	Node *TreeNode
}

// IsDir reports whether the child is a directory.
func (c TreeChild) IsDir() bool { return c.Node != nil }

// TreeNode mirrors one directory. Children keep the order the filesystem
// listed them in.
type TreeNode struct {
	children []TreeChild
}

// NewTreeNode returns an empty node.
func NewTreeNode() *TreeNode {
	return &TreeNode{}
}

// AddFile appends an unkeyed file leaf.
func (n *TreeNode) AddFile(name string) {
	n.children = append(n.children, TreeChild{Name: name})
}

// AddDir appends a keyed directory child.
func (n *TreeNode) AddDir(key, name string, child *TreeNode) {
	n.children = append(n.children, TreeChild{Key: key, Name: name, Node: child})
}

// Children returns the node's children in listing order.
func (n *TreeNode) Children() []TreeChild {
	out := make([]TreeChild, len(n.children))
	copy(out, n.children)
	return out
}

// Clone returns a deep copy of the node.
func (n *TreeNode) Clone() *TreeNode {
	if n == nil {
		return nil
	}
	out := &TreeNode{children: make([]TreeChild, len(n.children))}
	for i, child := range n.children {
		child.Node = child.Node.Clone()
		out.children[i] = child
	}
	return out
}

// Len returns the number of direct children.
func (n *TreeNode) Len() int { return len(n.children) }

// Files returns the file leaves in listing order.
func (n *TreeNode) Files() []string {
	var files []string
	for _, child := range n.children {
		if !child.IsDir() {
			files = append(files, child.Name)
		}
	}
	return files
}

// Dir returns the directory child stored under key.
func (n *TreeNode) Dir(key string) (*TreeNode, bool) {
	for _, child := range n.children {
		if child.IsDir() && child.Key == key {
			return child.Node, true
		}
	}
	return nil, false
}

// DirKeys returns directory keys in listing order.
func (n *TreeNode) DirKeys() []string {
	var keys []string
	for _, child := range n.children {
		if child.IsDir() {
			keys = append(keys, child.Key)
		}
	}
	return keys
}

// MarshalYAML renders the node as an ordered mapping. File leaves receive
// sequential integer keys, directories keep their separator-prefixed key.
func (n *TreeNode) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	leaf := 0
	for _, child := range n.children {
		if child.IsDir() {
			value, err := child.Node.MarshalYAML()
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: child.Key},
				value.(*yaml.Node),
			)
			continue
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(leaf)},
			&yaml.Node{Kind: yaml.ScalarNode, Value: child.Name},
		)
		leaf++
	}
	return node, nil
}

// MarshalJSON renders the node as an ordered JSON object using the same keys
// as MarshalYAML.
func (n *TreeNode) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	leaf := 0
	for i, child := range n.children {
		if i > 0 {
			buf.WriteByte(',')
		}
		key := child.Key
		if !child.IsDir() {
			key = strconv.Itoa(leaf)
			leaf++
		}
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')

		var value []byte
		if child.IsDir() {
			value, err = child.Node.MarshalJSON()
		} else {
			value, err = json.Marshal(child.Name)
		}
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
