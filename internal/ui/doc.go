// Package ui provides the styled terminal output shared by the bcmfw
// CLIs: the color palette, report section headers, aligned detail
// lines and the success/failure/warning result boxes with
// troubleshooting tips. Widths adapt to the terminal between 60 and
// 100 columns.
package ui
