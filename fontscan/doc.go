// Package fontscan collects the distinct font usages (family and point size)
// found on each page of a document.
//
// The scan runs leaves-first:
//
//   - [Config.Resolve] turns one styled run into a [ResolvedFont], applying
//     the fallback family and size when style data is missing and rounding
//     fractional sizes half-up.
//   - [Scanner.ScanElement] walks the text-bearing units of one shape or
//     table, skipping units that cannot be read.
//   - [Scanner.AggregatePage] deduplicates the fonts of one page into
//     [FontUsage] values, families in first-seen order, sizes ascending.
//   - [Scanner.BuildReport] walks the leading pages of a [Source] and keeps
//     the pages that use at least one font.
//
// Unreadable runs, cells and elements never abort a scan. They are recorded
// as [Warning] values available from [Scanner.Warnings].
//
//	scanner := fontscan.NewScanner(fontscan.DefaultConfig())
//	report, analyzed, err := scanner.BuildReport(doc, 0)
package fontscan
