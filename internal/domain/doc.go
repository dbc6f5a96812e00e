// Package domain models provincial bridge inspection records and the cleaning
// rules that turn the raw CSV export into typed records.
//
// # Data Source
//
// Records come from the Ontario "Bridge conditions" open data export, a CSV
// file whose first two lines are a title row and a column header row. Every
// following line describes one structure. Values are positional; the header
// text is never consulted.
//
// # Column Layout
//
//	 0  structure id        "1 -  32/"   ignored, see ID Assignment
//	 1  name                "WEST STREET UNDERPASS"
//	 2  highway             "403"        not unique, compared exactly
//	 3  latitude            "43.164531"
//	 4  longitude           "-80.251582"
//	 5  year built          "1963"
//	 6  last major rehab    "2014"       also the rebuild year
//	 7  last minor rehab    "2007"       may be empty
//	 8  number of spans     "4"
//	 9  span details        "Total=60.4  (1)=12.2;(2)=18;(3)=18;(4)=12.2;"
//	10  total length (m)    "61"
//	11  last inspection     "04/13/2012" MM/DD/YYYY
//	12  current BCI         "71.5"       repeats the newest history entry
//	13+ BCI history         "", "71.5", "", "68.1", ...
//
// Span details:
//
//	A "Total=<sum>" token, whitespace, then one "(n)=<length>;" group per span.
//	The total is discarded; the per-span lengths are kept in order.
//
// BCI history:
//
//	The history region is ragged: the export pads it unevenly with empty cells,
//	one slot per year, newest first. Empty cells mean "not inspected that year"
//	and are dropped rather than read as zero. A bridge may have no history.
//
// Coordinates:
//
//	Latitude and longitude are parsed only when both cells are non-empty. A row
//	with one coordinate missing is treated the same as a row with none; such a
//	bridge has a nil Location and never falls inside a search radius.
//
// # ID Assignment
//
// A record's ID is its 1-based position among the data rows of the batch. The
// structure id in column 0 is not unique across the export and is never parsed.
//
// # Failure Policy
//
// The first malformed row fails the whole batch. A row is malformed when it
// has fewer than twelve columns, when any numeric cell does not parse, or when
// the number of span lengths differs from the span count. There is no partial
// success mode, so one inconsistent row blocks the load; see [NormalizeBatch].
package domain
