package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// nodeSet tracks accepted DOM nodes so nested selector matches can be
// skipped in favor of their outermost container.
type nodeSet struct {
	nodes map[*html.Node]bool
}

func newNodeSet() *nodeSet {
	return &nodeSet{nodes: make(map[*html.Node]bool)}
}

func (s *nodeSet) add(sel *goquery.Selection) {
	for _, n := range sel.Nodes {
		s.nodes[n] = true
	}
}

// containsAncestorOf reports whether any node of the selection, or one
// of its ancestors, has been accepted already.
func (s *nodeSet) containsAncestorOf(sel *goquery.Selection) bool {
	for _, n := range sel.Nodes {
		for cur := n; cur != nil; cur = cur.Parent {
			if s.nodes[cur] {
				return true
			}
		}
	}
	return false
}
