package playground

import "github.com/dmitrymomot/validlite/pkg/result"

// node accumulates violations by path before the result tree is sealed.
type node struct {
	order    []string
	children map[string]*child
}

type child struct {
	value     any
	fragments []result.Fragment
	nested    *node
}

func newNode() *node {
	return &node{children: make(map[string]*child)}
}

func (n *node) get(field string) *child {
	c, ok := n.children[field]
	if !ok {
		c = &child{}
		n.children[field] = c
		n.order = append(n.order, field)
	}
	return c
}

// insert records f at path. An empty path or empty last segment records an
// object-level violation.
func (n *node) insert(path []string, value any, f result.Fragment) {
	if len(path) == 0 {
		path = []string{""}
	}
	c := n.get(path[0])
	if len(path) == 1 {
		c.value = value
		c.fragments = append(c.fragments, f)
		return
	}
	if c.nested == nil {
		c.nested = newNode()
	}
	c.nested.insert(path[1:], value, f)
}

func (n *node) build() *result.ValidatedResult {
	r := result.New()
	for _, field := range n.order {
		c := n.children[field]
		switch {
		case c.nested == nil:
			r.Add(result.NewElement(field, c.value, c.fragments...))
		case len(c.fragments) == 0:
			r.Add(result.NewNestedElement(field, nil, c.nested.build()))
		default:
			// Own violations bind to the field path through an unnamed
			// nested element.
			nested := result.New(result.NewElement("", c.value, c.fragments...))
			nested.Merge(c.nested.build())
			r.Add(result.NewNestedElement(field, nil, nested))
		}
	}
	return r
}
