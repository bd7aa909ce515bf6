package scheme

import (
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceElectron/pkg/electron"
	"github.com/OpenTraceLab/OpenTraceElectron/pkg/image"
	"github.com/OpenTraceLab/OpenTraceElectron/pkg/sexp"
)

// Encode builds the s-expression form of t
func Encode(t *electron.Tree) *sexp.List {
	root := sexp.NewList(
		sexp.Symbol("electron_scheme"),
		node("version", sexp.Symbol(strconv.Itoa(FormatVersion))),
		node("generator", sexp.String(Generator)),
	)
	for _, id := range t.Roots() {
		root.Append(encodeNode(t, id))
	}
	return root
}

func encodeNode(t *electron.Tree, id electron.NodeID) *sexp.List {
	el, _ := t.Get(id)

	name := "element"
	if el.IsWire() {
		name = "wire"
	}
	n := sexp.NewList(
		sexp.Symbol(name),
		node("uuid", sexp.Symbol(el.ID.String())),
		node("name", sexp.String(el.Name)),
		node("at", num(el.Pos.X), num(el.Pos.Y)),
	)

	if el.IsWire() {
		pts := sexp.NewList(sexp.Symbol("pts"))
		for _, p := range el.Points {
			pts.Append(node("xy", num(p.X), num(p.Y)))
		}
		n.Append(pts)
	} else if el.Image.Len() > 0 {
		n.Append(encodeImage(el))
	}

	for _, child := range t.Children(id) {
		n.Append(encodeNode(t, child))
	}
	return n
}

func encodeImage(el *electron.Element) *sexp.List {
	img := sexp.NewList(sexp.Symbol("image"))
	for _, tok := range el.Image.Tokens() {
		if strings.HasPrefix(tok, `"`) {
			// Tokens always quotes text it produced, so this cannot fail
			text, _ := image.UnquoteText(tok)
			img.Append(sexp.String(text))
			continue
		}
		img.Append(sexp.Symbol(tok))
	}
	return img
}

func node(name string, values ...sexp.Sexp) *sexp.List {
	return sexp.NewList(append([]sexp.Sexp{sexp.Symbol(name)}, values...)...)
}

func num(v float64) sexp.Symbol {
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return sexp.Symbol(strconv.FormatFloat(v, 'f', -1, 64))
}
