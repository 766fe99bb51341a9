// Package asterix holds the category schema (UAP) machinery shared by every
// category package.
//
// A Schema maps field reference numbers (FRN) to data items. Each item pairs an
// identifier such as "I040" with a codec, normally derived from a format.Format
// layout. DecodeRecord reads the FSPEC, then dispatches every present FRN in
// ascending order. An FRN the schema does not map is an error; data items are never
// skipped. EncodeRecord sorts the supplied items by FRN and prefixes the matching
// FSPEC.
//
// Schemas are built once at package initialisation and never modified, so one
// Schema may serve any number of concurrent decodes.
package asterix
