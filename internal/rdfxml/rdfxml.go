// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rdfxml reads and writes the RDF/XML subset used by catalog
// ontology files: node elements (rdf:Description or typed), rdf:about,
// rdf:ID and rdf:nodeID subjects, property attributes, and property
// elements carrying rdf:resource, a nested node, or text with an optional
// rdf:datatype.
package rdfxml

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/pdiddy/bibgraph/internal/graph"
)

// ErrUnsupported is returned for RDF/XML constructs outside the subset
// this package handles (rdf:parseType="Literal" or "Collection").
var ErrUnsupported = errors.New("unsupported RDF/XML construct")

const nsXML = "http://www.w3.org/XML/1998/namespace"

type decoder struct {
	xml     *xml.Decoder
	triples []graph.Triple
	blank   int
}

// Decode parses an RDF/XML document and returns its triples in document
// order. Duplicate triples are returned as often as they appear.
func Decode(r io.Reader) ([]graph.Triple, error) {
	d := &decoder{xml: xml.NewDecoder(r)}

	for {
		tok, err := d.xml.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading RDF/XML: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if isRDF(start.Name, "RDF") {
			continue
		}
		if _, err := d.node(start); err != nil {
			return nil, err
		}
	}
	return d.triples, nil
}

func isRDF(n xml.Name, local string) bool {
	return n.Space == graph.NSRDF && n.Local == local
}

func (d *decoder) emit(s, p graph.IRI, o graph.Term) {
	d.triples = append(d.triples, graph.Triple{Subject: s, Predicate: p, Object: o})
}

func (d *decoder) newBlank() graph.IRI {
	d.blank++
	return graph.IRI(fmt.Sprintf("_:b%d", d.blank))
}

// node reads a node element through its end tag and returns its subject.
func (d *decoder) node(start xml.StartElement) (graph.IRI, error) {
	subject := d.subject(start.Attr)

	if !isRDF(start.Name, "Description") {
		class, err := nameIRI(start.Name)
		if err != nil {
			return "", err
		}
		d.emit(subject, graph.RDFType, class)
	}

	for _, a := range start.Attr {
		if skipAttr(a.Name) {
			continue
		}
		p, err := nameIRI(a.Name)
		if err != nil {
			return "", err
		}
		if p == graph.RDFType {
			d.emit(subject, p, graph.IRI(a.Value))
			continue
		}
		d.emit(subject, p, graph.NewString(a.Value))
	}

	return subject, d.properties(subject)
}

// properties reads property elements until the enclosing end tag.
func (d *decoder) properties(subject graph.IRI) error {
	for {
		tok, err := d.xml.Token()
		if err != nil {
			return fmt.Errorf("reading properties of %s: %w", subject, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := d.property(subject, t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (d *decoder) subject(attrs []xml.Attr) graph.IRI {
	for _, a := range attrs {
		switch {
		case isRDF(a.Name, "about"):
			return graph.IRI(a.Value)
		case isRDF(a.Name, "ID"):
			return graph.IRI("#" + a.Value)
		case isRDF(a.Name, "nodeID"):
			return graph.IRI("_:" + a.Value)
		}
	}
	return d.newBlank()
}

func (d *decoder) property(subject graph.IRI, start xml.StartElement) error {
	predicate, err := nameIRI(start.Name)
	if err != nil {
		return err
	}

	var datatype graph.IRI
	for _, a := range start.Attr {
		switch {
		case isRDF(a.Name, "resource"):
			d.emit(subject, predicate, graph.IRI(a.Value))
			return d.xml.Skip()
		case isRDF(a.Name, "nodeID"):
			d.emit(subject, predicate, graph.IRI("_:"+a.Value))
			return d.xml.Skip()
		case isRDF(a.Name, "datatype"):
			datatype = graph.IRI(a.Value)
		case isRDF(a.Name, "parseType"):
			if a.Value != "Resource" {
				return fmt.Errorf("%w: rdf:parseType=%q", ErrUnsupported, a.Value)
			}
			obj := d.newBlank()
			d.emit(subject, predicate, obj)
			return d.properties(obj)
		}
	}

	var (
		text   strings.Builder
		nested graph.IRI
	)
	for {
		tok, err := d.xml.Token()
		if err != nil {
			return fmt.Errorf("reading %s of %s: %w", predicate, subject, err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			obj, err := d.node(t)
			if err != nil {
				return err
			}
			nested = obj
		case xml.EndElement:
			if nested != "" {
				d.emit(subject, predicate, nested)
			} else {
				d.emit(subject, predicate, graph.Literal{Value: text.String(), Datatype: datatype})
			}
			return nil
		}
	}
}

func skipAttr(n xml.Name) bool {
	switch {
	case n.Space == "xmlns", n.Space == "" && n.Local == "xmlns", n.Space == nsXML:
		return true
	case n.Space == graph.NSRDF && (n.Local == "about" || n.Local == "ID" || n.Local == "nodeID"):
		return true
	}
	return false
}

func nameIRI(n xml.Name) (graph.IRI, error) {
	if n.Space == "" {
		return "", fmt.Errorf("element or attribute %q has no namespace", n.Local)
	}
	return graph.IRI(n.Space + n.Local), nil
}

// Encode writes triples as RDF/XML with one rdf:Description per subject,
// in first-seen subject order.
func Encode(w io.Writer, triples iter.Seq[graph.Triple]) error {
	var subjects []graph.IRI
	bySubject := make(map[graph.IRI][]graph.Triple)
	for t := range triples {
		if _, ok := bySubject[t.Subject]; !ok {
			subjects = append(subjects, t.Subject)
		}
		bySubject[t.Subject] = append(bySubject[t.Subject], t)
	}

	ns := newNamespaces()
	for _, s := range subjects {
		for _, t := range bySubject[s] {
			if _, _, err := ns.split(t.Predicate); err != nil {
				return err
			}
		}
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(xml.Header)
	bw.WriteString("<rdf:RDF")
	for _, decl := range ns.decls() {
		fmt.Fprintf(bw, "\n  xmlns:%s=\"%s\"", decl[0], escape(decl[1]))
	}
	bw.WriteString(">\n")

	for _, s := range subjects {
		if strings.HasPrefix(string(s), "_:") {
			fmt.Fprintf(bw, "  <rdf:Description rdf:nodeID=\"%s\">\n", escape(strings.TrimPrefix(string(s), "_:")))
		} else {
			fmt.Fprintf(bw, "  <rdf:Description rdf:about=\"%s\">\n", escape(string(s)))
		}
		for _, t := range bySubject[s] {
			prefix, local, _ := ns.split(t.Predicate)
			name := prefix + ":" + local
			switch o := t.Object.(type) {
			case graph.Literal:
				if o.Datatype != "" {
					fmt.Fprintf(bw, "    <%s rdf:datatype=\"%s\">%s</%s>\n", name, escape(string(o.Datatype)), escape(o.Value), name)
				} else {
					fmt.Fprintf(bw, "    <%s>%s</%s>\n", name, escape(o.Value), name)
				}
			case graph.IRI:
				if strings.HasPrefix(string(o), "_:") {
					fmt.Fprintf(bw, "    <%s rdf:nodeID=\"%s\"/>\n", name, escape(strings.TrimPrefix(string(o), "_:")))
				} else {
					fmt.Fprintf(bw, "    <%s rdf:resource=\"%s\"/>\n", name, escape(string(o)))
				}
			}
		}
		bw.WriteString("  </rdf:Description>\n")
	}
	bw.WriteString("</rdf:RDF>\n")
	return bw.Flush()
}

func escape(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

// namespaces assigns prefixes to predicate namespaces: rdf and rdfs keep
// their conventional prefixes, others get ns1, ns2, ...
type namespaces struct {
	prefixes map[string]string
	order    []string
}

func newNamespaces() *namespaces {
	return &namespaces{
		prefixes: map[string]string{graph.NSRDF: "rdf", graph.NSRDFS: "rdfs"},
		order:    []string{graph.NSRDF, graph.NSRDFS},
	}
}

func (n *namespaces) split(p graph.IRI) (prefix, local string, err error) {
	s := string(p)
	i := strings.LastIndexAny(s, "#/")
	if i < 0 || i == len(s)-1 || !isNCName(s[i+1:]) {
		return "", "", fmt.Errorf("predicate %s cannot be written as an XML name", p)
	}
	space, local := s[:i+1], s[i+1:]
	prefix, ok := n.prefixes[space]
	if !ok {
		prefix = fmt.Sprintf("ns%d", len(n.order)-1)
		n.prefixes[space] = prefix
		n.order = append(n.order, space)
	}
	return prefix, local, nil
}

func (n *namespaces) decls() [][2]string {
	out := make([][2]string, 0, len(n.order))
	for _, space := range n.order {
		out = append(out, [2]string{n.prefixes[space], space})
	}
	return out
}

func isNCName(s string) bool {
	for i, r := range s {
		letter := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r > 0x7f
		if i == 0 && !letter {
			return false
		}
		if !letter && r != '-' && r != '.' && !(r >= '0' && r <= '9') {
			return false
		}
	}
	return s != ""
}
