// Package wikiru scrapes bluearchive.wikiru.jp: the paginated comic
// listings (Japanese, English and the Aoharu record) and the Japanese
// character list.
//
// Listing pages are read slot by slot. Slot i is the heading
// h2#content_1_{i} together with the description and content regions that
// follow it; LocateSlot is the only code that knows those selectors.
package wikiru
