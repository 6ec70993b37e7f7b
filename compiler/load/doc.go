// Package load recovers a class diagram from source text.
//
// Parsing is best effort and targets the restricted shape the java
// dialect of package gen emits. Comments are stripped, declarations are
// found by their headers and delimited by brace matching, and members are
// recognized at brace depth zero. Header lists map back to relationships:
// extends targets become Implementation relationships and implements
// targets become Inheritance relationships.
//
//	res := load.Parse(src)
//	if err := res.Err(); err != nil {
//	    // some declarations were skipped
//	}
//	d := res.Diagram()
package load
