// Package wiktionary turns Wiktionary pages into structured dictionary
// entries.
//
// The dumps are available from the wikimedia group here:
//    http://dumps.wikimedia.org/
//
// In particular, this works against the enwiktionary dumps from here:
//    http://dumps.wikimedia.org/enwiktionary/
//
// Pages come out of a dump through a Parser (NewParser, OpenDump or
// NewIndexedParser). Each page's language sections are then handed to
// an EntryParser, which yields lemma entries with definitions,
// pronunciations, etymology and word forms, or a single inflected-form
// entry pointing back at its lemma.
//
// See the programs in tools/ for converting dumps to gzipped JSON lines
// and loading the results into various stores.
package wiktionary
