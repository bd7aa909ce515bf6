package scheme

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceElectron/pkg/electron"
	"github.com/OpenTraceLab/OpenTraceElectron/pkg/image"
	"github.com/OpenTraceLab/OpenTraceElectron/pkg/sexp"
	"github.com/OpenTraceLab/OpenTraceElectron/pkg/tree"
)

// ErrFormat is wrapped by every structural error in a scheme file
var ErrFormat = errors.New("invalid scheme")

// Parse reads a scheme document from r. Any malformed node fails the whole
// load; no partial tree is returned.
func Parse(r io.Reader) (*electron.Tree, error) {
	sexps, err := sexp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}
	if len(sexps) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrFormat)
	}

	root := sexps[0]
	if name := sexp.GetNodeName(root); name != "electron_scheme" {
		return nil, fmt.Errorf("%w: expected 'electron_scheme', got '%s'", ErrFormat, name)
	}
	if err := checkVersion(root); err != nil {
		return nil, err
	}

	t := electron.NewTree()
	if err := parseChildren(t, tree.Root, root); err != nil {
		return nil, err
	}
	return t, nil
}

func checkVersion(root sexp.Sexp) error {
	versionNode, found := sexp.FindNode(root, "version")
	if !found {
		return fmt.Errorf("%w: missing required 'version' field", ErrFormat)
	}
	ver, err := sexp.GetInt(versionNode, 1)
	if err != nil {
		return fmt.Errorf("%w: version: %v", ErrFormat, err)
	}
	if ver > FormatVersion {
		return fmt.Errorf("%w: unsupported version %d (newest known %d)", ErrFormat, ver, FormatVersion)
	}
	return nil
}

// parseChildren adds every element and wire under node to t beneath parent,
// keeping file order
func parseChildren(t *electron.Tree, parent electron.NodeID, node sexp.Sexp) error {
	for _, child := range sexp.GetListItems(node) {
		var (
			el  electron.Element
			err error
		)
		switch sexp.GetNodeName(child) {
		case "element":
			el, err = parseElement(child)
		case "wire":
			el, err = parseWire(child)
		default:
			continue
		}
		if err != nil {
			return err
		}

		id, err := t.Add(parent, el)
		if err != nil {
			return err
		}
		if err := parseChildren(t, id, child); err != nil {
			return err
		}
	}
	return nil
}

// parseHeaderFields reads the uuid, name and at fields shared by elements
// and wires
func parseHeaderFields(node sexp.Sexp, el *electron.Element) error {
	if nameNode, found := sexp.FindNode(node, "name"); found {
		name, err := sexp.GetString(nameNode, 1)
		if err != nil {
			return fmt.Errorf("%w: name: %v", ErrFormat, err)
		}
		el.Name = name
	}

	if uuidNode, found := sexp.FindNode(node, "uuid"); found {
		str, err := sexp.GetString(uuidNode, 1)
		if err != nil {
			return fmt.Errorf("%w: %s %q: uuid: %v", ErrFormat, el.Kind, el.Name, err)
		}
		id, err := uuid.Parse(str)
		if err != nil {
			return fmt.Errorf("%w: %s %q: uuid: %v", ErrFormat, el.Kind, el.Name, err)
		}
		el.ID = id
	}

	if atNode, found := sexp.FindNode(node, "at"); found {
		x, y, err := sexp.GetPosition(atNode)
		if err != nil {
			return fmt.Errorf("%w: %s %q: at: %v", ErrFormat, el.Kind, el.Name, err)
		}
		el.Pos = image.Pt(x, y)
	}
	return nil
}

func parseElement(node sexp.Sexp) (electron.Element, error) {
	el := electron.NewComponent("", image.Point{}, nil)
	if err := parseHeaderFields(node, &el); err != nil {
		return el, err
	}

	imageNode, found := sexp.FindNode(node, "image")
	if !found {
		return el, nil
	}
	img, err := image.Parse(imageTokens(imageNode))
	if err != nil {
		return el, fmt.Errorf("element %q at %v: %w", el.Name, el.Pos, err)
	}
	el.Image = img
	return el, nil
}

// imageTokens turns the atoms of an (image …) node back into a primitive
// token stream. Quoted atoms are requoted so STRING text survives.
func imageTokens(node sexp.Sexp) []string {
	items := sexp.GetListItems(node)
	tokens := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case sexp.String:
			tokens = append(tokens, image.QuoteText(string(v)))
		default:
			// nested lists become tokens the primitive parser rejects
			tokens = append(tokens, v.String())
		}
	}
	return tokens
}

func parseWire(node sexp.Sexp) (electron.Element, error) {
	el := electron.NewWire("", image.Point{})
	if err := parseHeaderFields(node, &el); err != nil {
		return el, err
	}

	ptsNode, found := sexp.FindNode(node, "pts")
	if !found {
		return el, nil
	}
	for _, xy := range sexp.FindAllNodes(ptsNode, "xy") {
		x, y, err := sexp.GetPosition(xy)
		if err != nil {
			return el, fmt.Errorf("%w: wire %q: %v", ErrFormat, el.Name, err)
		}
		el.AddPoint(image.Pt(x, y))
	}
	return el, nil
}
