// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

// Namespaces used by the catalog graph.
const (
	NSRDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NSRDFS = "http://www.w3.org/2000/01/rdf-schema#"
	NSXSD  = "http://www.w3.org/2001/XMLSchema#"

	// NSEx is the default namespace for catalog predicates, classes and
	// minted entity identifiers.
	NSEx = "http://example.org/"
)

// Core RDF terms.
const (
	RDFType    IRI = NSRDF + "type"
	RDFSLabel  IRI = NSRDFS + "label"
	XSDInteger IRI = NSXSD + "integer"
	XSDString  IRI = NSXSD + "string"

	// rdfInteger is the datatype older ingestion runs wrote for integers.
	// It is accepted wherever xsd:integer is.
	rdfInteger IRI = NSRDF + "integer"
)

// Catalog classes.
const (
	ClassDocument IRI = NSEx + "Document"
	ClassAuthor   IRI = NSEx + "Author"
	ClassConcept  IRI = NSEx + "Concept"
)

// Catalog predicates. Title, abstract, year, DOI and citations are
// single-valued; author, concept and reference are multi-valued.
const (
	HasTitle     IRI = NSEx + "hasTitle"
	HasAbstract  IRI = NSEx + "hasAbstract"
	HasYear      IRI = NSEx + "hasYear"
	HasDOI       IRI = NSEx + "hasDOI"
	HasCitations IRI = NSEx + "hasCitations"
	HasAuthor    IRI = NSEx + "hasAuthor"
	HasConcept   IRI = NSEx + "hasConcept"
	HasReference IRI = NSEx + "hasReference"
)

// IsIntegerType reports whether dt names an integer datatype.
func IsIntegerType(dt IRI) bool {
	return dt == XSDInteger || dt == rdfInteger
}
