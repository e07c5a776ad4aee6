// Command fontaudit lists the fonts used on each slide of a presentation
// and writes the summary back as a table on the first slide.
package main

func main() {
	Execute()
}
