package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Node is a single UI element: panel, label, etc. It has optional class and id for CSS matching,
// bounds (position and size), and optional text for labels.
type Node struct {
	Class  string // e.g. "modal" for .modal
	ID     string // e.g. "close" for #close
	Bounds rl.Rectangle
	Text   string
}

// NewNode creates a node with class, id and text at the given bounds.
func NewNode(class, id, text string, bounds rl.Rectangle) *Node {
	return &Node{Class: class, ID: id, Text: text, Bounds: bounds}
}
