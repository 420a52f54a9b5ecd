package spe3

import (
	"fmt"

	"github.com/beevik/etree"
)

// Metadata is the XML footer of an SPE3 file, parsed into a navigable
// document. It is read-only after parsing; mutating the underlying tree is
// not supported.
type Metadata struct {
	doc *etree.Document
}

// ParseMetadata parses raw footer bytes into a Metadata document.
func ParseMetadata(data []byte) (*Metadata, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: document has no root element", ErrMalformedMetadata)
	}
	return &Metadata{doc: doc}, nil
}

// Root returns the document's root element.
func (m *Metadata) Root() *Element {
	return &Element{el: m.doc.Root()}
}

// Serialize writes the document back to XML text. The output preserves all
// structural information (tags, attributes, text, child order) but is not
// guaranteed byte-identical to the original footer.
func (m *Metadata) Serialize() ([]byte, error) {
	return m.doc.WriteToBytes()
}

// Element is one node of the metadata document.
type Element struct {
	el *etree.Element
}

// Name returns the element's tag name.
func (e *Element) Name() string {
	return e.el.Tag
}

// Attr returns the named attribute's value, and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	a := e.el.SelectAttr(name)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// Child returns the first child element with the given tag, or nil.
func (e *Element) Child(name string) *Element {
	c := e.el.SelectElement(name)
	if c == nil {
		return nil
	}
	return &Element{el: c}
}

// Children returns all child elements with the given tag, in document order.
// Repeated tags under the same parent are all returned, never collapsed.
func (e *Element) Children(name string) []*Element {
	els := e.el.SelectElements(name)
	out := make([]*Element, len(els))
	for i, c := range els {
		out[i] = &Element{el: c}
	}
	return out
}

// ChildElements returns all child elements in document order.
func (e *Element) ChildElements() []*Element {
	els := e.el.ChildElements()
	out := make([]*Element, len(els))
	for i, c := range els {
		out[i] = &Element{el: c}
	}
	return out
}

// Attrs returns the element's attributes as name/value pairs in document order.
func (e *Element) Attrs() [][2]string {
	out := make([][2]string, 0, len(e.el.Attr))
	for _, a := range e.el.Attr {
		out = append(out, [2]string{a.Key, a.Value})
	}
	return out
}

// Text returns the element's leaf text content.
func (e *Element) Text() string {
	return e.el.Text()
}

// Path returns the absolute path of the element within the document,
// used in error messages.
func (e *Element) Path() string {
	return e.el.GetPath()
}

// WalkFunc is called for each element during traversal.
// Return nil to continue walking, ErrStopWalk to stop without error,
// or any other error to abort.
type WalkFunc func(path string, el *Element) error

// Walk traverses every element of the metadata document in document order,
// starting at the root. It lets callers inspect acquisition fields beyond
// the fixed paths this package extracts itself.
//
// Example:
//
//	md.Walk(func(path string, el *spe3.Element) error {
//	    fmt.Println(path, el.Text())
//	    return nil
//	})
func (m *Metadata) Walk(fn WalkFunc) error {
	if err := walkElement(m.doc.Root(), fn); err != nil && !IsStopWalk(err) {
		return err
	}
	return nil
}

func walkElement(el *etree.Element, fn WalkFunc) error {
	wrapped := &Element{el: el}
	if err := fn(wrapped.Path(), wrapped); err != nil {
		return err
	}
	for _, child := range el.ChildElements() {
		if err := walkElement(child, fn); err != nil {
			return err
		}
	}
	return nil
}

// ErrStopWalk can be returned from a WalkFunc to stop walking without an error.
var ErrStopWalk = &walkStopError{}

type walkStopError struct{}

func (e *walkStopError) Error() string { return "walk stopped" }

// IsStopWalk returns true if the error is ErrStopWalk.
func IsStopWalk(err error) bool {
	_, ok := err.(*walkStopError)
	return ok
}
