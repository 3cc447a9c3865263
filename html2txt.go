// Package html2txt converts directories of HTML documents into plain text.
// It discovers markup files, extracts readable text, applies line-level
// cleaning rules, and writes per-document text files, a single consolidated
// file, or both.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, fs/).
package html2txt
