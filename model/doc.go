// Package model provides the intermediate representation (IR) that document
// providers hand to the font audit.
//
// A [Document] is an ordered list of [Page] values. Each page holds the
// placeable objects found on it as [Element] values whose [ElementKind] is
// decided once, when the provider reads the document:
//
//   - [KindShape] - a text-bearing shape; its text is reached through a [TextSource]
//   - [KindTable] - a table; its cells are reached through a [TableSource]
//   - [KindOther] - pictures, charts, connectors and anything else without text
//
// # Text
//
// A [TextSource] exposes the plain text of a shape or cell together with its
// styled runs. Providers that cannot iterate runs return [ErrRunsUnavailable]
// from Runs; callers then fall back to paragraph-level styles.
//
//	text := model.NewText(
//	    model.NewParagraph(model.TextRun{Text: "Hello", Family: "Arial", Size: 12}),
//	)
//
// # Summary tables
//
// [TableLayout] is the grid written back into a document: rows of
// [LayoutCell] values with optional style directives and geometry hints in
// points. It can also be exported with ToMarkdown and ToCSV.
package model
